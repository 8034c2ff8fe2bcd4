package param

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Kind classifies a raw command line.
type Kind int

const (
	KindEmpty Kind = iota
	KindInvalid
	KindSet
	KindDelete
	KindReload
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindSet:
		return "set"
	case KindDelete:
		return "delete"
	case KindReload:
		return "reload"
	default:
		return "invalid"
	}
}

// deletePrefix starts a delete command; the space is significant.
const deletePrefix = "del "

// ReloadCommands are the inputs that restart the add-in.
var ReloadCommands = []string{"reload", "restart"}

// Command is a classified command line.
type Command struct {
	Kind Kind
	// Raw is the trimmed input.
	Raw string
	// Target is the parameter name for KindDelete.
	Target string
}

// Classify decides which kind of command input is without validating set
// commands; use Parse on Raw for that.
func Classify(input string) Command {
	raw := strings.TrimSpace(input)
	cmd := Command{Kind: KindInvalid, Raw: raw}

	switch {
	case raw == "":
		cmd.Kind = KindEmpty
	case isReload(raw):
		cmd.Kind = KindReload
	case strings.HasPrefix(raw, deletePrefix):
		target := norm.NFC.String(strings.TrimSpace(raw[len(deletePrefix):]))
		if target != "" {
			cmd.Kind = KindDelete
			cmd.Target = target
		}
	case strings.Index(raw, "=") >= 1:
		cmd.Kind = KindSet
	}
	return cmd
}

func isReload(raw string) bool {
	lower := strings.ToLower(raw)
	for _, c := range ReloadCommands {
		if lower == c {
			return true
		}
	}
	return false
}

// HelpText describes the command syntax.
const HelpText = `Examples:
  new_param = 10mm
    set/update "new_param" to 10mm

  del new_param
    delete the "new_param" parameter

  reload | restart
    restart this add-in`

package addin

import "fmt"

// Definition describes one command button.
type Definition struct {
	ID          string
	Name        string
	Description string
	Resources   string
	PanelID     string
	Workspace   string
}

// Workspace maps a workspace name to the toolbar panel the command lives in.
type Workspace struct {
	Name    string
	PanelID string
}

// DefaultWorkspaces lists the workspaces the editor is installed in, in
// registration order.
var DefaultWorkspaces = []Workspace{
	{Name: "Solid", PanelID: "SolidModifyPanel"},
	{Name: "Surface", PanelID: "SurfaceModifyPanel"},
	{Name: "Mesh", PanelID: "ParaMeshModifyPanel"},
	{Name: "Form", PanelID: "TSplineModifyPanel"},
	{Name: "Sheet", PanelID: "SheetMetalModifyPanel"},
	{Name: "PCB", PanelID: "PCBModifyPanel"},
	{Name: "Sketch", PanelID: "SketchModifyPanel"},
}

// BaseDefinition is the command every workspace entry is cloned from.
var BaseDefinition = Definition{
	ID:          "cmdID_ParamEditPlus",
	Name:        "ParamEditPlus",
	Description: "Enables you to edit all User Parameters (extended)",
	Resources:   "./resources",
	PanelID:     "SolidModifyPanel",
	Workspace:   "FusionSolidEnvironment",
}

// ForWorkspace clones d for ws. The ID gets the workspace name as suffix
// and the panel is replaced; everything else is copied.
func (d Definition) ForWorkspace(ws Workspace) Definition {
	clone := d
	clone.ID = fmt.Sprintf("%s_%s", d.ID, ws.Name)
	clone.PanelID = ws.PanelID
	return clone
}

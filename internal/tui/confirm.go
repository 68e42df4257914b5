package tui

import "github.com/MKhiriev/worldsync/models"

type confirmModel struct {
	action models.ResolutionAction
}

func (m confirmModel) View() string {
	var content string
	switch m.action {
	case models.ActionAcceptSnapshot:
		content = "Accept snapshot?\n\nThe remote world is replaced with the local snapshot.\n"
	default:
		content = "Accept remote?\n\nThe local snapshot is overwritten with the remote world.\n"
	}
	content += "This cannot be undone.\n\ny confirm    n cancel"
	return overlayBoxStyle.Render(content)
}

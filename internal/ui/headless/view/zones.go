package view

import "fmt"

const (
	zoneLogPanel         = "panel-log"
	zoneConsolePanel     = "panel-console"
	zoneDialogQuitCancel = "dialog-quit-cancel"
	zoneDialogQuitAccept = "dialog-quit-accept"
)

func zoneForFocus(focus int) string {
	return fmt.Sprintf("focus-%d", focus)
}

package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

// Notification icons.
var (
	IconNotifyInfo    = "" // nf-fa-info_circle
	IconNotifySuccess = "" // nf-fa-check_circle
	IconNotifyWarning = "" // nf-fa-warning
	IconNotifyError   = "" // nf-fa-times_circle
)

var (
	IconBuilding = "" // nf-fa-building
	IconBell     = "" // nf-fa-bell
)

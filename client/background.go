package client

const (
	appIcon         = "/favicon.ico"
	notificationTag = "nextalk-notification"
)

// PushMessage is a push payload as delivered to the background context.
type PushMessage struct {
	Title string
	Body  string
	Data  map[string]string
}

// Display describes the OS-level notification to show for a message.
type Display struct {
	Title string
	Body  string
	Icon  string
	Badge string
	Tag   string
	Data  map[string]string
}

// Click is the action taken when the user activates a displayed
// notification.
type Click struct {
	Dismiss  bool
	FocusURL string
}

// HandleMessage maps an inbound push message to a display action. It is a
// pure function: the background context holds no state, and each message is
// handled independently.
func HandleMessage(msg PushMessage) Display {
	title := msg.Title
	if title == "" {
		title = "NexTalk Notification"
	}
	body := msg.Body
	if body == "" {
		body = "You have a new message"
	}

	return Display{
		Title: title,
		Body:  body,
		Icon:  appIcon,
		Badge: appIcon,
		Tag:   notificationTag,
		Data:  msg.Data,
	}
}

// HandleClick dismisses the notification and brings the application to the
// foreground at its root, opening it if necessary.
func HandleClick(d Display) Click {
	return Click{Dismiss: true, FocusURL: "/"}
}

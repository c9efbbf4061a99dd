package types

type RequestSendMessage struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

type RequestSendMedia struct {
	To       string `json:"to"`
	MediaURL string `json:"mediaUrl"`
	Caption  string `json:"caption"`
}

type RequestReact struct {
	MessageID string `json:"messageId"`
	Reaction  string `json:"reaction"`
}

type RequestAddParticipants struct {
	GroupID      string   `json:"groupId"`
	Participants []string `json:"participants"`
}

type RequestWebhook struct {
	URL string `json:"url"`
}

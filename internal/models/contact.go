package models

// ContactStatusPending is the status of a message nobody has handled yet
const ContactStatusPending = "Chưa xử lý"

// ContactMessage is what the tenant sends to the landlord
type ContactMessage struct {
	CustomerID string `json:"customer_id" example:"15"`
	RoomID     string `json:"room_id,omitempty" example:"3"`
	Reason     string `json:"reason" example:"Sửa chữa"`
	Content    string `json:"content" example:"Vòi nước bị rỉ"`
	Status     string `json:"status" example:"Chưa xử lý"`
	SentAt     string `json:"sent_at" example:"2024-03-02 08:15:00"`
}

// ContactReply is a sent message and the landlord's answer, if any
type ContactReply struct {
	ID            string `json:"id" example:"42"`
	Reason        string `json:"reason" example:"Sửa chữa"`
	Content       string `json:"content" example:"Vòi nước bị rỉ"`
	Status        string `json:"status" example:"Đã xử lý"`
	DisplayStatus string `json:"display_status,omitempty"`
	Reply         string `json:"reply,omitempty" example:"Chiều nay thợ sẽ qua"`
	RepliedAt     string `json:"replied_at,omitempty"`
	SentAt        string `json:"sent_at" example:"2024-03-02 08:15:00"`
}

// ContactReplies lists replies and how many appeared since the last look
type ContactReplies struct {
	Replies  []ContactReply `json:"replies"`
	NewCount int            `json:"new_count" example:"1"`
}

package dto

type CreateAnnouncementRequest struct {
	Content  string `json:"content" validate:"required"`
	PostedBy string `json:"posted_by"`
}

type AnnouncementResponse struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	PostedBy  string `json:"posted_by"`
	CreatedAt string `json:"created_at"`
}

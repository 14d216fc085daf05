package types

import "time"

// User is the authenticated PeerLearn account.
type User struct {
	ID             string    `json:"_id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Bio            *string   `json:"bio,omitempty"`
	Avatar         *string   `json:"avatar,omitempty"`
	StudyInterests []string  `json:"study_interests"`
	LearningStreak int       `json:"learning_streaks"`
	StudentID      *string   `json:"student_id,omitempty"`
	IsVerified     bool      `json:"is_verified"`
	Friends        []string  `json:"friends"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Token is the credential pair issued by the auth endpoints.
type Token struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// FriendRequestStatus tracks where a friend request is in its lifecycle.
type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "pending"
	FriendRequestAccepted FriendRequestStatus = "accepted"
	FriendRequestDeclined FriendRequestStatus = "declined"
)

// FriendRequest is a pending or settled request between two users.
type FriendRequest struct {
	ID         string              `json:"_id"`
	SenderID   string              `json:"sender_id"`
	ReceiverID string              `json:"receiver_id"`
	Sender     *User               `json:"sender,omitempty"`
	Status     FriendRequestStatus `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
}

// Classroom groups members and rooms under an admin.
type Classroom struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Logo        *string   `json:"logo,omitempty"`
	AdminID     string    `json:"admin_id"`
	Members     []string  `json:"members"`
	InviteCode  string    `json:"invite_code"`
	Rooms       []Room    `json:"rooms,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Room is a chat room inside a classroom.
type Room struct {
	ID          string    `json:"_id"`
	ClassroomID string    `json:"classroom_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// YouTubeChatMessage is one turn of the chat attached to a summary session.
type YouTubeChatMessage struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// YouTubeSession is a summarized video.
type YouTubeSession struct {
	ID              string               `json:"_id"`
	UserID          string               `json:"user_id"`
	VideoURL        string               `json:"video_url"`
	VideoTitle      *string              `json:"video_title,omitempty"`
	VideoDuration   *int                 `json:"video_duration,omitempty"` // seconds
	ShortSummary    *string              `json:"short_summary,omitempty"`
	DetailedSummary *string              `json:"detailed_summary,omitempty"`
	ChatHistory     []YouTubeChatMessage `json:"chat_history"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// Title returns the video title, falling back to the URL.
func (s YouTubeSession) Title() string {
	if s.VideoTitle != nil && *s.VideoTitle != "" {
		return *s.VideoTitle
	}
	return s.VideoURL
}

// SocketEnvelope is the frame shape used on the realtime socket.
type SocketEnvelope struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data,omitempty"`
}

package models

import "time"

// Channel is a community chat room.
type Channel struct {
	ID          string
	Name        string
	Description string
}

// Channels lists the fixed community rooms.
var Channels = []Channel{
	{"general", "General", "Talk about anything"},
	{"profit", "Profit proof", "Show off today's gains"},
	{"qna", "Q&A", "Ask anything"},
	{"strategy", "Strategy", "Share your trading strategy"},
}

// FindChannel looks up a channel by id.
func FindChannel(id string) (Channel, bool) {
	for _, c := range Channels {
		if c.ID == id {
			return c, true
		}
	}
	return Channel{}, false
}

// UserProfile is the local chat identity.
type UserProfile struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}

// CommunityMessage is a single chat post.
type CommunityMessage struct {
	ID        string    `json:"id"`
	ChannelID string    `json:"channelId"`
	UserID    string    `json:"userId"`
	Nickname  string    `json:"nickname"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"trading_journal/interfaces"
	"trading_journal/models"
)

var (
	// ErrNoProfile is returned when posting before a nickname is set.
	ErrNoProfile = errors.New("set a nickname first")
	// ErrEmptyChannel is returned when archiving a channel without messages.
	ErrEmptyChannel = errors.New("no messages to archive")
)

// Community is the local chat board.
type Community struct {
	store interfaces.Store
	now   func() time.Time
	mu    sync.Mutex
}

// NewCommunity returns a chat board backed by store.
func NewCommunity(store interfaces.Store) *Community {
	return &Community{store: store, now: time.Now}
}

// Profile returns the local chat identity, if one was set.
func (c *Community) Profile(ctx context.Context) (models.UserProfile, bool, error) {
	var p models.UserProfile
	ok, err := c.store.Load(ctx, ProfileKey, &p)
	if err != nil {
		return models.UserProfile{}, false, fmt.Errorf("failed to load profile: %w", err)
	}
	return p, ok, nil
}

// SetNickname creates a fresh profile with the given nickname.
func (c *Community) SetNickname(ctx context.Context, nickname string) (models.UserProfile, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return models.UserProfile{}, errors.New("nickname must not be empty")
	}
	p := models.UserProfile{ID: uuid.NewString(), Nickname: nickname}
	if err := c.store.Save(ctx, ProfileKey, p); err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to save profile: %w", err)
	}
	return p, nil
}

// Post appends a message from the local profile to channelID.
func (c *Community) Post(ctx context.Context, channelID, text string) (models.CommunityMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.CommunityMessage{}, errors.New("message must not be empty")
	}
	if _, ok := models.FindChannel(channelID); !ok {
		return models.CommunityMessage{}, fmt.Errorf("unknown channel %q", channelID)
	}

	p, ok, err := c.Profile(ctx)
	if err != nil {
		return models.CommunityMessage{}, err
	}
	if !ok {
		return models.CommunityMessage{}, ErrNoProfile
	}

	msg := models.CommunityMessage{
		ID:        uuid.NewString(),
		ChannelID: channelID,
		UserID:    p.ID,
		Nickname:  p.Nickname,
		Text:      text,
		Timestamp: c.now(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	messages, err := loadList[models.CommunityMessage](ctx, c.store, MessagesKey)
	if err != nil {
		return models.CommunityMessage{}, fmt.Errorf("failed to load messages: %w", err)
	}
	if err := c.store.Save(ctx, MessagesKey, append(messages, msg)); err != nil {
		return models.CommunityMessage{}, fmt.Errorf("failed to save messages: %w", err)
	}
	return msg, nil
}

// Messages returns the messages of channelID in posting order.
func (c *Community) Messages(ctx context.Context, channelID string) ([]models.CommunityMessage, error) {
	messages, err := loadList[models.CommunityMessage](ctx, c.store, MessagesKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}
	var out []models.CommunityMessage
	for _, m := range messages {
		if m.ChannelID == channelID {
			out = append(out, m)
		}
	}
	return out, nil
}

// Clear deletes every message of channelID and returns how many were removed.
func (c *Community) Clear(ctx context.Context, channelID string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	messages, err := loadList[models.CommunityMessage](ctx, c.store, MessagesKey)
	if err != nil {
		return 0, fmt.Errorf("failed to load messages: %w", err)
	}
	kept := messages[:0]
	for _, m := range messages {
		if m.ChannelID != channelID {
			kept = append(kept, m)
		}
	}
	removed := len(messages) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := c.store.Save(ctx, MessagesKey, kept); err != nil {
		return 0, fmt.Errorf("failed to save messages: %w", err)
	}
	return removed, nil
}

// Archive writes channelID's messages to w, one "[time] nickname: text" line each.
func (c *Community) Archive(ctx context.Context, channelID string, w io.Writer) (int, error) {
	messages, err := c.Messages(ctx, channelID)
	if err != nil {
		return 0, err
	}
	if len(messages) == 0 {
		return 0, ErrEmptyChannel
	}
	for _, m := range messages {
		ts := m.Timestamp.Local().Format("2006-01-02 15:04:05")
		if _, err := fmt.Fprintf(w, "[%s] %s: %s\n", ts, m.Nickname, m.Text); err != nil {
			return 0, fmt.Errorf("failed to write archive: %w", err)
		}
	}
	return len(messages), nil
}

// ArchiveName is the file name used for a channel archive taken on day.
func ArchiveName(channel models.Channel, day time.Time) string {
	return fmt.Sprintf("TradingDiary_%s_Chat_Archive_%s.txt", channel.ID, day.Format("2006-01-02"))
}

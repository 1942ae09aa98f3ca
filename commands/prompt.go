package commands

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Strum355/log"
	"github.com/bwmarrin/discordgo"

	"github.com/EtihadVA/discord-bot/embed"
)

// promptTimeout bounds how long a multi-step flow waits on each answer.
const promptTimeout = 60 * time.Second

// cancelKeyword aborts an in-progress flow when given as an answer.
const cancelKeyword = "cancel"

type promptOutcome int

const (
	promptAnswered promptOutcome = iota
	promptCancelled
	promptTimedOut
)

type promptResult struct {
	outcome promptOutcome
	text    string
}

var (
	pendingMu sync.Mutex
	// pending maps channelID:authorID to the channel the next reply is
	// delivered on. At most one prompt per user per channel.
	pending = make(map[string]chan string)
)

func promptKey(channelID, authorID string) string {
	return channelID + ":" + authorID
}

// deliverReply routes a message to the prompt waiting on it, if any.
// Reports whether the message was consumed.
func deliverReply(m *discordgo.MessageCreate) bool {
	key := promptKey(m.ChannelID, m.Author.ID)
	pendingMu.Lock()
	reply, ok := pending[key]
	if ok {
		delete(pending, key)
	}
	pendingMu.Unlock()
	if !ok {
		return false
	}
	reply <- m.Content
	return true
}

// replyOutcome classifies a raw prompt answer.
func replyOutcome(text string) promptOutcome {
	if strings.EqualFold(strings.TrimSpace(text), cancelKeyword) {
		return promptCancelled
	}
	return promptAnswered
}

// registerPrompt installs the reply channel for key. A prompt already
// waiting there is cancelled rather than silently overwritten, so two
// flows never race for the same reply.
func registerPrompt(key string) chan string {
	reply := make(chan string, 1)
	pendingMu.Lock()
	if prior, ok := pending[key]; ok {
		prior <- cancelKeyword
	}
	pending[key] = reply
	pendingMu.Unlock()
	return reply
}

// ask sends the question and waits for the next message from the same
// user in the same channel. The wait is bounded and the "cancel"
// keyword aborts; both surface as distinct outcomes instead of answers.
func ask(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, title, question string) promptResult {
	emb := embed.NewEmbed().SetTitle(title).SetDescription(question)
	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, emb.MessageEmbed); err != nil {
		log.WithContext(ctx).WithError(err).Error("Failed to send prompt")
		return promptResult{outcome: promptTimedOut}
	}

	key := promptKey(m.ChannelID, m.Author.ID)
	reply := registerPrompt(key)

	select {
	case text := <-reply:
		if replyOutcome(text) == promptCancelled {
			return promptResult{outcome: promptCancelled}
		}
		return promptResult{outcome: promptAnswered, text: text}
	case <-time.After(promptTimeout):
		pendingMu.Lock()
		delete(pending, key)
		pendingMu.Unlock()
		return promptResult{outcome: promptTimedOut}
	}
}

// askText runs ask and handles the cancelled and timed out outcomes by
// notifying the user. The flow should stop when ok is false.
func askText(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, title, question string) (text string, ok bool) {
	res := ask(ctx, s, m, title, question)
	switch res.outcome {
	case promptCancelled:
		s.ChannelMessageSendEmbed(m.ChannelID, errorEmbed("Flight creation cancelled.", ""))
		return "", false
	case promptTimedOut:
		s.ChannelMessageSendEmbed(m.ChannelID, errorEmbed("Timed out. Please try again later.", ""))
		return "", false
	}
	return res.text, true
}

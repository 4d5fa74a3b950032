package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lanetalk/tenpin/internal/importer"
	"github.com/lanetalk/tenpin/internal/metrics"
	"github.com/lanetalk/tenpin/internal/notifier"
	"github.com/lanetalk/tenpin/internal/pairing"
	"github.com/lanetalk/tenpin/internal/standings"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// boardSize caps how many entries of each board end up in a channel message.
const boardSize = 5

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// Implement the Notifier interface
func (s *Notifier) SendStandings(tournament string, st standings.Standings, dryRun bool) error {
	msg := s.formatStandings(tournament, st)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendPairingConflict(pid string, conflict *pairing.Conflict, dryRun bool) error {
	msg := s.formatPairingConflict(pid, conflict)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendImportSummary(result *importer.Result, dryRun bool) error {
	msg := s.formatImportSummary(result)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// formatStandings creates the Slack message for published standings using Block Kit.
func (s *Notifier) formatStandings(tournament string, st standings.Standings) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🎳 %s standings 🎳", tournament), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if lines := teamLines(st.Team); len(lines) > 0 {
		text := "Team event:\n" + strings.Join(lines, "\n")
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, true, false), nil, nil))
	}
	if lines := doublesLines(st.Doubles); len(lines) > 0 {
		text := "Doubles event:\n" + strings.Join(lines, "\n")
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, true, false), nil, nil))
	}
	if lines := singlesLines(st.Singles); len(lines) > 0 {
		text := "Singles event:\n" + strings.Join(lines, "\n")
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, true, false), nil, nil))
	}

	if len(blocks) == 1 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No scores on the board yet.", true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

func teamLines(entries []standings.TeamEntry) []string {
	var lines []string
	for _, e := range entries {
		if len(lines) == boardSize {
			break
		}
		lines = append(lines, fmt.Sprintf("%d. %s: %s", e.Rank, e.Name, fmtTotal(e.Total)))
	}
	return lines
}

func doublesLines(entries []standings.DoublesEntry) []string {
	var lines []string
	for _, e := range entries {
		if len(lines) == boardSize {
			break
		}
		lines = append(lines, fmt.Sprintf("%d. %s: %s", e.Rank, e.PairName, fmtTotal(e.Total)))
	}
	return lines
}

func singlesLines(entries []standings.SinglesEntry) []string {
	var lines []string
	for _, e := range entries {
		if len(lines) == boardSize {
			break
		}
		lines = append(lines, fmt.Sprintf("%d. %s: %s", e.Rank, e.Name, fmtTotal(e.Total)))
	}
	return lines
}

func fmtTotal(total *int) string {
	if total == nil {
		return "in progress"
	}
	return strconv.Itoa(*total)
}

// formatPairingConflict creates the Slack message for a pairing that could not
// be linked without an override.
func (s *Notifier) formatPairingConflict(pid string, conflict *pairing.Conflict) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "⚠️ Doubles pairing conflict", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detail := fmt.Sprintf("%s asked to pair with %s, but %s is already paired with %s.",
		pid, conflict.PartnerName, conflict.PartnerName, conflict.CurrentPartnerName)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detail, true, false), nil, nil))

	blocks = append(blocks, slack.NewContextBlock("",
		slack.NewTextBlockObject("plain_text", "Re-send the request with override to break the existing pairing.", true, false)))

	return slack.NewBlockMessage(blocks...)
}

// formatImportSummary creates the Slack message for an applied import batch.
func (s *Notifier) formatImportSummary(result *importer.Result) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🎳 Score import applied", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detail := fmt.Sprintf("Matched: %d\nUnmatched: %d\nErrors: %d",
		len(result.Matched), len(result.Unmatched), len(result.Errors))
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detail, true, false), nil, nil))

	if len(result.Warnings) > 0 {
		var warnings []string
		for _, w := range result.Warnings {
			warnings = append(warnings, fmt.Sprintf("• %s", w))
		}
		warningsText := "Warnings:\n" + strings.Join(warnings, "\n")
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", warningsText, true, false), nil, nil))
	}

	blocks = append(blocks, slack.NewContextBlock("",
		slack.NewTextBlockObject("plain_text", fmt.Sprintf("Batch %s", result.BatchID), true, false)))

	return slack.NewBlockMessage(blocks...)
}

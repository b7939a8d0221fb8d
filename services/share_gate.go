package services

import (
	"fmt"
	"strings"

	"casefile/models"
)

// GateState is the authoritative state of a view-share session.
type GateState string

const (
	GateNoToken      GateState = "no_token"      // terminal: no token supplied
	GateLoading      GateState = "loading"       // share lookup in flight
	GateNotFound     GateState = "not_found"     // terminal: token unknown or expired
	GateAwaitingCode GateState = "awaiting_code" // share resolved, code not yet verified
	GateLocked       GateState = "locked"        // terminal: attempt budget exhausted
	GateGranted      GateState = "granted"       // terminal: code matched, destination computed
	GateInvalidShare GateState = "invalid_share" // terminal: share record missing its required fields
)

// MaxCodeAttempts is the cumulative wrong-code budget per share.
const MaxCodeAttempts = 3

// ShareGate mediates anonymous access to one shared file or note. All
// transitions go through ResolveSucceeded and SubmitCode; transitions
// arriving in any other state are discarded, which is what makes a stale
// lookup resolution harmless.
type ShareGate struct {
	state       GateState
	share       *models.ViewShare
	attempts    int
	destination string
}

func NewShareGate(token string) *ShareGate {
	if strings.TrimSpace(token) == "" {
		return &ShareGate{state: GateNoToken}
	}
	return &ShareGate{state: GateLoading}
}

func (g *ShareGate) State() GateState { return g.state }

// Attempts returns the cumulative wrong-code count.
func (g *ShareGate) Attempts() int { return g.attempts }

// AttemptsRemaining returns how many wrong submissions are left before lockout.
func (g *ShareGate) AttemptsRemaining() int {
	remaining := MaxCodeAttempts - g.attempts
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Destination returns the deep link computed on grant. Empty until the gate
// reaches GateGranted.
func (g *ShareGate) Destination() string { return g.destination }

func (g *ShareGate) Share() *models.ViewShare { return g.share }

// ResolveSucceeded applies the result of the external token lookup. A nil
// share means the token is unknown or expired and never touches the attempt
// counter. A share whose persisted counter already exhausted the budget
// enters GateLocked directly. Ignored unless the gate is still loading.
func (g *ShareGate) ResolveSucceeded(share *models.ViewShare) GateState {
	if g.state != GateLoading {
		return g.state
	}

	if share == nil {
		g.state = GateNotFound
		return g.state
	}

	g.share = share
	g.attempts = share.Attempts
	if share.Locked || g.attempts >= MaxCodeAttempts {
		g.state = GateLocked
	} else {
		g.state = GateAwaitingCode
	}
	return g.state
}

// SubmitCode compares the entered code against the share's stored code,
// trimmed and case-insensitively. Exact equality only; a mismatch consumes
// one attempt and the third cumulative mismatch locks the gate. A match
// computes the navigation destination, or reports an invalid share when the
// record is missing the fields its own type requires.
func (g *ShareGate) SubmitCode(code string) GateState {
	if g.state != GateAwaitingCode {
		return g.state
	}

	entered := strings.TrimSpace(code)
	stored := strings.TrimSpace(g.share.AccessCode)
	if !strings.EqualFold(entered, stored) || entered == "" {
		g.attempts++
		if g.attempts >= MaxCodeAttempts {
			g.state = GateLocked
		}
		return g.state
	}

	destination, err := ShareDestination(g.share)
	if err != nil {
		g.state = GateInvalidShare
		return g.state
	}

	g.destination = destination
	g.state = GateGranted
	return g.state
}

// ShareDestination builds the deep link a granted share navigates to. A file
// share needs both folder and file selectors; a note share needs the note
// selector. Anything else is an invalid share, never a grant.
func ShareDestination(share *models.ViewShare) (string, error) {
	switch share.Type {
	case models.ShareTypeFile:
		if share.FolderID == "" || share.FolderFileID == "" {
			return "", fmt.Errorf("file share is missing folder or file selector")
		}
		return fmt.Sprintf("/file/%s/project/%s?folder=%s&view=%s",
			share.FileID, share.ProjectID, share.FolderID, share.FolderFileID), nil
	case models.ShareTypeNote:
		if share.NoteID == "" {
			return "", fmt.Errorf("note share is missing note selector")
		}
		return fmt.Sprintf("/file/%s/project/%s?note=%s",
			share.FileID, share.ProjectID, share.NoteID), nil
	default:
		return "", fmt.Errorf("unknown share type: %s", share.Type)
	}
}

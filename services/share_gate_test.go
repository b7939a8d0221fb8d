package services

import (
	"testing"

	"casefile/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileShare() *models.ViewShare {
	return &models.ViewShare{
		Token:        "tok-1",
		Type:         models.ShareTypeFile,
		FileID:       "file-1",
		ProjectID:    "proj-1",
		FolderID:     "folder-1",
		FolderFileID: "doc-1",
		AccessCode:   "1234",
	}
}

func noteShare() *models.ViewShare {
	return &models.ViewShare{
		Token:      "tok-2",
		Type:       models.ShareTypeNote,
		FileID:     "file-1",
		ProjectID:  "proj-1",
		NoteID:     "note-1",
		AccessCode: "abcd",
	}
}

func TestGateNoToken(t *testing.T) {
	gate := NewShareGate("")
	assert.Equal(t, GateNoToken, gate.State())

	// terminal: resolutions and submissions are discarded
	gate.ResolveSucceeded(fileShare())
	assert.Equal(t, GateNoToken, gate.State())
	gate.SubmitCode("1234")
	assert.Equal(t, GateNoToken, gate.State())
}

func TestGateNullLookupIsNotFound(t *testing.T) {
	gate := NewShareGate("tok-x")
	assert.Equal(t, GateLoading, gate.State())

	gate.ResolveSucceeded(nil)
	assert.Equal(t, GateNotFound, gate.State())
	assert.Zero(t, gate.Attempts(), "a null lookup never consumes an attempt")

	// stale second resolution is discarded
	gate.ResolveSucceeded(fileShare())
	assert.Equal(t, GateNotFound, gate.State())
}

func TestGateResolveEntersAwaitingCode(t *testing.T) {
	gate := NewShareGate("tok-1")
	gate.ResolveSucceeded(fileShare())

	assert.Equal(t, GateAwaitingCode, gate.State())
	assert.Zero(t, gate.Attempts())
	assert.Equal(t, MaxCodeAttempts, gate.AttemptsRemaining())
}

func TestGateCodeMatchIsTrimmedAndCaseInsensitive(t *testing.T) {
	share := fileShare()
	share.AccessCode = "AbCd"

	gate := NewShareGate(share.Token)
	gate.ResolveSucceeded(share)

	state := gate.SubmitCode("  abcd  ")
	require.Equal(t, GateGranted, state)
	assert.Equal(t, "/file/file-1/project/proj-1?folder=folder-1&view=doc-1", gate.Destination())
}

func TestGateNoPartialMatch(t *testing.T) {
	gate := NewShareGate("tok-1")
	gate.ResolveSucceeded(fileShare())

	assert.Equal(t, GateAwaitingCode, gate.SubmitCode("123"))
	assert.Equal(t, GateAwaitingCode, gate.SubmitCode("12345"))
	assert.Equal(t, 2, gate.Attempts())
}

func TestGateLocksAfterThreeMismatches(t *testing.T) {
	gate := NewShareGate("tok-1")
	gate.ResolveSucceeded(fileShare())

	assert.Equal(t, GateAwaitingCode, gate.SubmitCode("wrong"))
	assert.Equal(t, 1, gate.Attempts())
	assert.Equal(t, GateAwaitingCode, gate.SubmitCode("wrong"))
	assert.Equal(t, GateLocked, gate.SubmitCode("wrong"))

	// the gate never auto-unlocks, not even for the right code
	assert.Equal(t, GateLocked, gate.SubmitCode("1234"))
	assert.Zero(t, gate.AttemptsRemaining())
}

func TestGateSeedsPersistedAttempts(t *testing.T) {
	share := fileShare()
	share.Attempts = 2

	gate := NewShareGate(share.Token)
	gate.ResolveSucceeded(share)
	require.Equal(t, GateAwaitingCode, gate.State())
	assert.Equal(t, 1, gate.AttemptsRemaining())

	assert.Equal(t, GateLocked, gate.SubmitCode("wrong"))
}

func TestGateResolvesLockedShareAsLocked(t *testing.T) {
	share := fileShare()
	share.Locked = true
	share.Attempts = MaxCodeAttempts

	gate := NewShareGate(share.Token)
	assert.Equal(t, GateLocked, gate.ResolveSucceeded(share))
}

func TestGateFileShareMissingSelectorsIsInvalid(t *testing.T) {
	share := fileShare()
	share.FolderFileID = ""

	gate := NewShareGate(share.Token)
	gate.ResolveSucceeded(share)

	// the right code on a malformed share is an error, never a grant
	assert.Equal(t, GateInvalidShare, gate.SubmitCode("1234"))
	assert.Empty(t, gate.Destination())
}

func TestGateNoteShareDestination(t *testing.T) {
	gate := NewShareGate("tok-2")
	gate.ResolveSucceeded(noteShare())

	require.Equal(t, GateGranted, gate.SubmitCode("abcd"))
	assert.Equal(t, "/file/file-1/project/proj-1?note=note-1", gate.Destination())
}

func TestShareDestinationShapes(t *testing.T) {
	_, err := ShareDestination(&models.ViewShare{Type: models.ShareTypeNote})
	assert.Error(t, err)

	_, err = ShareDestination(&models.ViewShare{Type: "folder"})
	assert.Error(t, err)

	dest, err := ShareDestination(fileShare())
	require.NoError(t, err)
	assert.Equal(t, "/file/file-1/project/proj-1?folder=folder-1&view=doc-1", dest)
}

package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/auto-applier/internal/answers"
	"github.com/jonathan/auto-applier/internal/config"
	"github.com/jonathan/auto-applier/internal/prompts"
	"github.com/jonathan/auto-applier/internal/resume"
)

type noopDriver struct{}

func (noopDriver) Navigate(context.Context, string) error { return nil }
func (noopDriver) CurrentURL(context.Context) (string, error) {
	return "https://www.linkedin.com/feed/", nil
}
func (noopDriver) Reload(context.Context) error                    { return nil }
func (noopDriver) WaitVisible(context.Context, string) error       { return nil }
func (noopDriver) Exists(context.Context, string) (bool, error)    { return false, nil }
func (noopDriver) Click(context.Context, string) error             { return nil }
func (noopDriver) Text(context.Context, string) (string, error)    { return "", nil }
func (noopDriver) HTML(context.Context, string) (string, error)    { return "", nil }
func (noopDriver) SendKeys(context.Context, string, string) error  { return nil }
func (noopDriver) Clear(context.Context, string) error             { return nil }
func (noopDriver) SetUpload(context.Context, string, string) error { return nil }
func (noopDriver) Evaluate(context.Context, string, any) error     { return nil }
func (noopDriver) ScrollSlow(context.Context) error                { return nil }
func (noopDriver) Close() error                                    { return nil }

type idleClient struct{}

func (idleClient) Complete(context.Context, string) (string, error) { return "", nil }

func testResume(t *testing.T) *resume.Resume {
	t.Helper()
	r, err := resume.Load([]byte(`
personal_information:
  name: Ada
  surname: Lovelace
  email: ada@example.com
`))
	require.NoError(t, err)
	return r
}

func testAnswerer(t *testing.T, r *resume.Resume) *answers.Answerer {
	t.Helper()
	cache, err := answers.OpenCache("")
	require.NoError(t, err)
	return answers.NewAnswerer(idleClient{}, prompts.NewComposer(r), cache)
}

func testParameters() Parameters {
	return Parameters{
		Filters: &config.Filters{
			Positions: []string{"SRE"},
			Locations: []string{"Berlin"},
			Date:      map[string]bool{"all time": true},
		},
		Secrets: config.Secrets{Email: "ada@example.com", Password: "hunter2", LLMKey: "sk-test"},
	}
}

func TestStartApplyEnumeratesAllMissingPredecessors(t *testing.T) {
	s := New(noopDriver{})

	err := s.StartApply(context.Background())
	require.Error(t, err)

	var perr *PreconditionError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "start_apply", perr.Operation)
	assert.Equal(t, []string{PredLoggedIn, PredProfileSet, PredAnswererSet, PredParametersSet}, perr.Missing)
	assert.Contains(t, err.Error(), PredLoggedIn)
	assert.Contains(t, err.Error(), PredParametersSet)
}

func TestSetProfileAndResumeRejectsEmpty(t *testing.T) {
	s := New(noopDriver{})
	r := testResume(t)

	assert.Error(t, s.SetProfileAndResume("", r))
	assert.Error(t, s.SetProfileAndResume("profile text", nil))
	assert.False(t, s.Readiness().Is(PredProfileSet))

	require.NoError(t, s.SetProfileAndResume("profile text", r))
	assert.True(t, s.Readiness().Is(PredProfileSet))
}

func TestSetAnswererRequiresProfile(t *testing.T) {
	s := New(noopDriver{})
	r := testResume(t)
	a := testAnswerer(t, r)

	err := s.SetAnswererAndGenerator(a, nil)
	var perr *PreconditionError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, []string{PredProfileSet}, perr.Missing)

	require.NoError(t, s.SetProfileAndResume("profile text", r))
	require.NoError(t, s.SetAnswererAndGenerator(a, nil))
	assert.True(t, s.Readiness().Is(PredAnswererSet))
}

func TestSetParametersMarksCredentialsAndParameters(t *testing.T) {
	s := New(noopDriver{})

	params := testParameters()
	params.Secrets.Password = ""
	assert.Error(t, s.SetParameters(params))
	assert.False(t, s.Readiness().Is(PredParametersSet))

	require.NoError(t, s.SetParameters(testParameters()))
	assert.True(t, s.Readiness().Is(PredCredentialsSet))
	assert.True(t, s.Readiness().Is(PredParametersSet))
}

func TestStartLoginRequiresCredentials(t *testing.T) {
	s := New(noopDriver{})

	err := s.StartLogin(context.Background())
	var perr *PreconditionError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, []string{PredCredentialsSet}, perr.Missing)
}

func TestReadinessMonotonicAndReset(t *testing.T) {
	r := NewReadiness()
	r.Mark(PredProfileSet)
	first, ok := r.MarkedAt(PredProfileSet)
	require.True(t, ok)

	time.Sleep(time.Millisecond)
	r.Mark(PredProfileSet)
	second, _ := r.MarkedAt(PredProfileSet)
	assert.Equal(t, first, second, "re-marking keeps the original timestamp")

	r.Reset()
	assert.False(t, r.Is(PredProfileSet))
}

func TestFullSetupUnlocksDriveLoop(t *testing.T) {
	s := New(noopDriver{})
	r := testResume(t)

	require.NoError(t, s.SetProfileAndResume("profile text", r))
	require.NoError(t, s.SetAnswererAndGenerator(testAnswerer(t, r), nil))
	require.NoError(t, s.SetParameters(testParameters()))
	require.NoError(t, s.StartLogin(context.Background()))

	// With a driver that renders nothing, the drive loop finds no
	// postings and returns cleanly.
	require.NoError(t, s.StartCollectData(context.Background()))
}

package usecases

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mannequin/internal/domain"
	"mannequin/internal/domain/entities"
	"mannequin/internal/domain/valueobjects"
	"mannequin/internal/infrastructure/repositories"
)

func newWizard(t *testing.T, ai *fakeAIService) (*WizardUseCase, *entities.Session) {
	t.Helper()

	uc := NewWizardUseCase(repositories.NewMemorySessionRepository(), newTryOnUseCase(ai), zerolog.Nop())
	t.Cleanup(uc.Close)

	session, created, err := uc.Session(context.Background(), "", valueobjects.English)
	require.NoError(t, err)
	require.True(t, created)
	return uc, session
}

func image(t *testing.T, dataURL string) *valueobjects.EncodedImage {
	t.Helper()
	img, err := valueobjects.ParseDataURL(dataURL)
	require.NoError(t, err)
	return img
}

func upload(t *testing.T, uc *WizardUseCase, session *entities.Session) {
	t.Helper()
	require.True(t, uc.UploadModel(session, image(t, "data:image/jpeg;base64,AAA")))
	accepted, err := uc.UploadGarment(session, image(t, "data:image/jpeg;base64,BBB"))
	require.NoError(t, err)
	require.True(t, accepted)
}

func TestWizardUseCase_Session(t *testing.T) {
	uc, session := newWizard(t, &fakeAIService{})

	again, created, err := uc.Session(context.Background(), session.ID(), valueobjects.Persian)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Same(t, session, again)

	fresh, created, err := uc.Session(context.Background(), "unknown", valueobjects.Persian)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, session.ID(), fresh.ID())
	assert.Equal(t, valueobjects.Persian, uc.View(fresh).Language)
}

func TestWizardUseCase_GenerateSuccess(t *testing.T) {
	ai := &fakeAIService{payload: "CCC"}
	uc, session := newWizard(t, ai)
	upload(t, uc, session)

	require.True(t, uc.Generate(session))
	uc.Wait()

	view := uc.View(session)
	assert.Equal(t, entities.PhaseDone, view.Phase)
	require.NotNil(t, view.FinalImage)
	assert.Equal(t, "data:image/png;base64,CCC", view.FinalImage.String())
	assert.Equal(t, "data:image/jpeg;base64,AAA", view.ModelImage.String())
	assert.Equal(t, "data:image/jpeg;base64,BBB", view.ClothingImage.String())
	assert.Equal(t, 1, ai.calls())
}

func TestWizardUseCase_LogsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	ai := &fakeAIService{payload: "CCC"}

	uc := NewWizardUseCase(repositories.NewMemorySessionRepository(), newTryOnUseCase(ai), logger)
	t.Cleanup(uc.Close)

	session, _, err := uc.Session(context.Background(), "", valueobjects.English)
	require.NoError(t, err)
	upload(t, uc, session)

	require.True(t, uc.Generate(session))
	uc.Wait()

	require.NotNil(t, ai.last())
	assert.Contains(t, buf.String(), `"request_id":"`+string(ai.last().ID())+`"`)
	assert.Contains(t, buf.String(), "generation finished")
}

func TestWizardUseCase_GenerateWithoutImagesIsNoop(t *testing.T) {
	ai := &fakeAIService{payload: "CCC"}
	uc, session := newWizard(t, ai)

	assert.False(t, uc.Generate(session))

	require.True(t, uc.UploadModel(session, image(t, "data:image/jpeg;base64,AAA")))
	assert.False(t, uc.Generate(session))

	uc.Wait()
	assert.Equal(t, 0, ai.calls())
	assert.Equal(t, entities.PhaseIdle, uc.View(session).Phase)
}

func TestWizardUseCase_GarmentLocked(t *testing.T) {
	uc, session := newWizard(t, &fakeAIService{})

	accepted, err := uc.UploadGarment(session, image(t, "data:image/jpeg;base64,BBB"))
	assert.False(t, accepted)
	assert.ErrorIs(t, err, domain.ErrGarmentLocked)
	assert.Nil(t, uc.View(session).ClothingImage)
}

func TestWizardUseCase_NoImageFails(t *testing.T) {
	ai := &fakeAIService{}
	uc, session := newWizard(t, ai)
	upload(t, uc, session)

	require.True(t, uc.Generate(session))
	uc.Wait()

	view := uc.View(session)
	assert.True(t, view.Failed)
	assert.Nil(t, view.FinalImage)
	assert.NotEqual(t, entities.PhaseLoading, view.Phase)

	// failure is terminal until start over
	assert.False(t, uc.Generate(session))
	uc.Wait()
	assert.Equal(t, 1, ai.calls())
}

func TestWizardUseCase_SecondGenerateWhileLoading(t *testing.T) {
	ai := &fakeAIService{payload: "CCC", release: make(chan struct{})}
	uc, session := newWizard(t, ai)
	upload(t, uc, session)

	require.True(t, uc.Generate(session))
	assert.True(t, uc.View(session).Phase == entities.PhaseLoading)
	assert.False(t, uc.Generate(session))

	close(ai.release)
	uc.Wait()
	assert.Equal(t, 1, ai.calls())
}

func TestWizardUseCase_StartOverCancelsInFlight(t *testing.T) {
	ai := &fakeAIService{payload: "CCC", release: make(chan struct{}), honourCancel: true}
	uc, session := newWizard(t, ai)
	upload(t, uc, session)

	require.True(t, uc.Generate(session))
	uc.StartOver(session)

	done := make(chan struct{})
	go func() {
		uc.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("start over did not cancel the generation")
	}

	view := uc.View(session)
	assert.Equal(t, entities.PhaseIdle, view.Phase)
	assert.Nil(t, view.ModelImage)
	assert.Nil(t, view.ClothingImage)
	assert.Nil(t, view.FinalImage)
	assert.False(t, view.Failed)
}

func TestWizardUseCase_LateResultAfterStartOverIsDropped(t *testing.T) {
	ai := &fakeAIService{payload: "CCC", release: make(chan struct{})}
	uc, session := newWizard(t, ai)
	upload(t, uc, session)

	require.True(t, uc.Generate(session))
	uc.StartOver(session)
	close(ai.release)
	uc.Wait()

	view := uc.View(session)
	assert.Equal(t, entities.PhaseIdle, view.Phase)
	assert.Nil(t, view.FinalImage)
}

func TestWizardUseCase_Language(t *testing.T) {
	uc, session := newWizard(t, &fakeAIService{})

	assert.Equal(t, valueobjects.Persian, uc.ToggleLanguage(session))
	assert.Equal(t, valueobjects.RightToLeft, uc.View(session).Direction)

	uc.SetLanguage(session, valueobjects.English)
	assert.Equal(t, valueobjects.LeftToRight, uc.View(session).Direction)
}

func TestWizardUseCase_SweepIdle(t *testing.T) {
	ai := &fakeAIService{payload: "CCC", release: make(chan struct{}), honourCancel: true}
	uc, session := newWizard(t, ai)
	upload(t, uc, session)
	require.True(t, uc.Generate(session))

	assert.Equal(t, 1, uc.SweepIdle(context.Background(), -time.Minute))
	uc.Wait()

	_, created, err := uc.Session(context.Background(), session.ID(), valueobjects.English)
	require.NoError(t, err)
	assert.True(t, created)
}

func TestWizardUseCase_CloseStopsGenerations(t *testing.T) {
	ai := &fakeAIService{payload: "CCC", release: make(chan struct{}), honourCancel: true}
	uc := NewWizardUseCase(repositories.NewMemorySessionRepository(), newTryOnUseCase(ai), zerolog.Nop())

	session, _, err := uc.Session(context.Background(), "", valueobjects.English)
	require.NoError(t, err)
	upload(t, uc, session)
	require.True(t, uc.Generate(session))

	uc.Close()
	assert.True(t, uc.View(session).Failed)

	uc.StartOver(session)
	upload(t, uc, session)
	assert.False(t, uc.Generate(session))
}

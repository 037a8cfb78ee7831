package usecases

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"go.uber.org/goleak"

	"mannequin/internal/domain/entities"
	"mannequin/internal/domain/services"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

// fakeAIService answers with a fixed payload or error. With release set it
// blocks until the channel is closed; honourCancel makes it return early
// when the context is cancelled.
type fakeAIService struct {
	payload      string
	err          error
	release      chan struct{}
	honourCancel bool

	mu       sync.Mutex
	requests []*entities.TryOnRequest
}

func (f *fakeAIService) GenerateTryOn(ctx context.Context, request *entities.TryOnRequest) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, request)
	f.mu.Unlock()

	if f.release != nil {
		if f.honourCancel {
			select {
			case <-f.release:
			case <-ctx.Done():
				return "", ctx.Err()
			}
		} else {
			<-f.release
		}
	}
	return f.payload, f.err
}

func (f *fakeAIService) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeAIService) last() *entities.TryOnRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return nil
	}
	return f.requests[len(f.requests)-1]
}

func newTryOnUseCase(ai *fakeAIService) *TryOnUseCase {
	return NewTryOnUseCase(services.NewTryOnDomainService(ai), zerolog.Nop())
}

package services

import (
	"context"
	"log"
	"sync"

	"unhinge_server/models"
)

const (
	// FeedPageSize is how many candidates one refill fetches
	FeedPageSize = 20
	// RefillThreshold triggers a prefetch when this few items remain
	RefillThreshold = 5
)

// FeedCandidateStore fetches feed candidates excluding a given owner
type FeedCandidateStore interface {
	FeedCandidates(ctx context.Context, excludeOwner string, limit int) ([]models.Meme, error)
}

// ExclusionResolver computes the ids that must not be served to a user
type ExclusionResolver interface {
	Resolve(ctx context.Context, userID string) (map[string]struct{}, error)
}

// feedSession is the per-user prefetch buffer of not-yet-shown memes plus the
// uploader of the meme currently on screen. Owned exclusively by its user's
// requests; discarded on EndSession.
type feedSession struct {
	mu        sync.Mutex
	queue     []models.Meme
	seen      map[string]struct{} // every id ever queued this session
	refilling bool
	uploader  *models.UserProfile // profile of queue head's uploader, once fetched
	ctx       context.Context
	cancel    context.CancelFunc
}

// FeedService serves each user an ordered, deduplicated, exclusion-aware
// stream of memes
type FeedService struct {
	Memes      FeedCandidateStore
	Exclusions ExclusionResolver

	mu       sync.Mutex
	sessions map[string]*feedSession
}

func NewFeedService(memes FeedCandidateStore, exclusions ExclusionResolver) *FeedService {
	return &FeedService{
		Memes:      memes,
		Exclusions: exclusions,
		sessions:   make(map[string]*feedSession),
	}
}

func (s *FeedService) session(userID string) *feedSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		ctx, cancel := context.WithCancel(context.Background())
		sess = &feedSession{
			seen:   make(map[string]struct{}),
			ctx:    ctx,
			cancel: cancel,
		}
		s.sessions[userID] = sess
	}
	return sess
}

// Current returns the head of the user's queue, or nil when exhausted
func (s *FeedService) Current(userID string) *models.Meme {
	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if len(sess.queue) == 0 {
		return nil
	}
	meme := sess.queue[0]
	return &meme
}

// CurrentUploader returns the uploader profile attached to the current meme,
// if the enrichment fetch has landed
func (s *FeedService) CurrentUploader(userID string) *models.UserProfile {
	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.uploader
}

// Advance discards the head of the queue and returns the new head. When the
// remaining items fall at or below the refill threshold it triggers a single
// asynchronous refill; a refill already in flight is not duplicated.
func (s *FeedService) Advance(userID string) (*models.Meme, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	sess := s.session(userID)

	sess.mu.Lock()
	if len(sess.queue) > 0 {
		sess.queue = sess.queue[1:]
	}
	sess.uploader = nil
	var next *models.Meme
	if len(sess.queue) > 0 {
		meme := sess.queue[0]
		next = &meme
	}
	needRefill := len(sess.queue) <= RefillThreshold
	refillCtx := sess.ctx
	sess.mu.Unlock()

	if needRefill {
		// Refill the captured session directly so a concurrent EndSession
		// cannot be undone by a lazy re-create in the sessions map.
		go func() {
			if err := s.refill(refillCtx, userID, sess); err != nil {
				log.Printf("⚠️ Feed refill for %s failed: %v", userID, err)
			}
		}()
	}
	return next, nil
}

// Refill fetches one page of candidates, filters them through the exclusion
// set and the session's own history, and appends the survivors. At most one
// refill runs per session; concurrent requests are coalesced into a no-op.
func (s *FeedService) Refill(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	return s.refill(ctx, userID, s.session(userID))
}

func (s *FeedService) refill(ctx context.Context, userID string, sess *feedSession) error {
	sess.mu.Lock()
	if sess.refilling {
		sess.mu.Unlock()
		return nil
	}
	sess.refilling = true
	sess.mu.Unlock()

	defer func() {
		sess.mu.Lock()
		sess.refilling = false
		sess.mu.Unlock()
	}()

	excluded, err := s.Exclusions.Resolve(ctx, userID)
	if err != nil {
		return err
	}

	candidates, err := s.Memes.FeedCandidates(ctx, userID, FeedPageSize)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	appended := 0
	for _, meme := range candidates {
		if meme.UploadedBy == userID {
			continue
		}
		if _, ok := excluded[meme.MemeID]; ok {
			continue
		}
		if _, ok := sess.seen[meme.MemeID]; ok {
			continue
		}
		sess.seen[meme.MemeID] = struct{}{}
		sess.queue = append(sess.queue, meme)
		appended++
	}
	log.Printf("✅ Feed refill for %s appended %d of %d candidates", userID, appended, len(candidates))
	return nil
}

// ApplyUploader attaches a fetched uploader profile to the session, but only
// if the meme it was fetched for is still the current one. A stale result is
// discarded so a slow fetch cannot attach the wrong uploader to a card.
func (s *FeedService) ApplyUploader(userID, memeID string, profile *models.UserProfile) bool {
	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if len(sess.queue) == 0 || sess.queue[0].MemeID != memeID {
		return false
	}
	sess.uploader = profile
	return true
}

// SessionContext returns the context governing the session's background
// fetches; it is canceled by EndSession
func (s *FeedService) SessionContext(userID string) context.Context {
	return s.session(userID).ctx
}

// EndSession cancels in-flight work and discards the session state
func (s *FeedService) EndSession(userID string) {
	s.mu.Lock()
	sess, ok := s.sessions[userID]
	if ok {
		delete(s.sessions, userID)
	}
	s.mu.Unlock()
	if ok {
		sess.cancel()
	}
}

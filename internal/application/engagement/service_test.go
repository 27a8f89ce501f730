package engagement_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/vidshare/internal/application/engagement"
	"github.com/baechuer/vidshare/internal/domain"
)

type fakeClock struct{ t time.Time }

func (c fakeClock) Now() time.Time { return c.t }

type relKey struct {
	actor  uuid.UUID
	kind   domain.RelationKind
	target uuid.UUID
}

// memStore serializes transactions with a mutex and enforces tuple uniqueness,
// the same guarantees the relations primary key gives in Postgres.
type memStore struct {
	mu      sync.Mutex
	targets map[domain.RelationKind]map[uuid.UUID]bool
	// hidden maps a target to the only actor allowed to see it.
	hidden map[uuid.UUID]uuid.UUID
	rels    map[relKey]domain.Relation

	deleteErr  error
	deleteNoop bool
	insertErr  error
}

func newMemStore() *memStore {
	return &memStore{
		targets: map[domain.RelationKind]map[uuid.UUID]bool{},
		hidden:  map[uuid.UUID]uuid.UUID{},
		rels:    map[relKey]domain.Relation{},
	}
}

func (m *memStore) addTarget(kind domain.RelationKind, id uuid.UUID) {
	if m.targets[kind] == nil {
		m.targets[kind] = map[uuid.UUID]bool{}
	}
	m.targets[kind][id] = true
}

func (m *memStore) TargetVisible(ctx context.Context, kind domain.RelationKind, id uuid.UUID, viewer uuid.NullUUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.targets[kind][id] {
		return false, nil
	}
	if owner, ok := m.hidden[id]; ok {
		return viewer.Valid && viewer.UUID == owner, nil
	}
	return true, nil
}

func (m *memStore) WithRelationTx(ctx context.Context, fn func(tx engagement.RelationTx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := make(map[relKey]domain.Relation, len(m.rels))
	for k, v := range m.rels {
		snapshot[k] = v
	}
	if err := fn(memTx{m}); err != nil {
		m.rels = snapshot
		return err
	}
	return nil
}

func (m *memStore) Summary(ctx context.Context, kind domain.RelationKind, target uuid.UUID, viewer uuid.NullUUID) (domain.RelationSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sum := domain.RelationSummary{Kind: kind, TargetID: target}
	for k := range m.rels {
		if k.kind == kind && k.target == target {
			sum.Count++
			if viewer.Valid && k.actor == viewer.UUID {
				sum.IsActive = true
			}
		}
	}
	return sum, nil
}

func (m *memStore) ListLikedVideos(ctx context.Context, actor uuid.UUID, req domain.PageRequest) ([]domain.LikedVideo, int, error) {
	return nil, 0, nil
}

func (m *memStore) ListSubscribers(ctx context.Context, ch uuid.UUID, v uuid.NullUUID, req domain.PageRequest) ([]domain.SubscriptionEntry, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.SubscriptionEntry
	for k, r := range m.rels {
		if k.kind == domain.KindSubscribes && k.target == ch {
			out = append(out, domain.SubscriptionEntry{
				Channel:      domain.ChannelSummary{OwnerSummary: domain.OwnerSummary{ID: k.actor}},
				SubscribedAt: r.CreatedAt,
			})
		}
	}
	return out, len(out), nil
}

func (m *memStore) ListSubscriptions(ctx context.Context, sub uuid.UUID, v uuid.NullUUID, req domain.PageRequest) ([]domain.SubscriptionEntry, int, error) {
	return nil, 0, nil
}

type memTx struct{ m *memStore }

func (t memTx) RelationExists(ctx context.Context, actor uuid.UUID, kind domain.RelationKind, target uuid.UUID) (bool, error) {
	_, ok := t.m.rels[relKey{actor, kind, target}]
	return ok, nil
}

func (t memTx) InsertRelation(ctx context.Context, rel domain.Relation) error {
	if t.m.insertErr != nil {
		return t.m.insertErr
	}
	k := relKey{rel.ActorID, rel.Kind, rel.TargetID}
	if _, ok := t.m.rels[k]; ok {
		return domain.ErrConflict("relation already exists")
	}
	t.m.rels[k] = rel
	return nil
}

func (t memTx) DeleteRelation(ctx context.Context, actor uuid.UUID, kind domain.RelationKind, target uuid.UUID) (bool, error) {
	if t.m.deleteErr != nil {
		return false, t.m.deleteErr
	}
	if t.m.deleteNoop {
		return false, nil
	}
	k := relKey{actor, kind, target}
	if _, ok := t.m.rels[k]; !ok {
		return false, nil
	}
	delete(t.m.rels, k)
	return true, nil
}

func newService(store *memStore) *engagement.Service {
	return engagement.New(store, fakeClock{t: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)}, nil)
}

func TestToggle_PairsLikeAndUnlike(t *testing.T) {
	store := newMemStore()
	video, actor := uuid.New(), uuid.New()
	store.addTarget(domain.KindLikesVideo, video)
	svc := newService(store)
	ctx := context.Background()

	want := []domain.ToggleState{domain.StateLiked, domain.StateUnliked, domain.StateLiked, domain.StateUnliked, domain.StateLiked}
	for i, w := range want {
		got, err := svc.ToggleVideoLike(ctx, actor, video)
		require.NoError(t, err)
		assert.Equal(t, w, got, "call %d", i+1)

		sum, err := svc.Summary(ctx, domain.KindLikesVideo, video, domain.Viewer(actor))
		require.NoError(t, err)
		if (i+1)%2 == 1 {
			assert.Equal(t, 1, sum.Count)
			assert.True(t, sum.IsActive)
		} else {
			assert.Equal(t, 0, sum.Count)
			assert.False(t, sum.IsActive)
		}
	}
}

func TestToggle_CountMatchesOddTogglers(t *testing.T) {
	store := newMemStore()
	tweet := uuid.New()
	store.addTarget(domain.KindLikesTweet, tweet)
	svc := newService(store)
	ctx := context.Background()

	calls := map[uuid.UUID]int{}
	for i := 0; i < 7; i++ {
		calls[uuid.New()] = i + 1
	}

	odd := 0
	for actor, n := range calls {
		for i := 0; i < n; i++ {
			_, err := svc.ToggleTweetLike(ctx, actor, tweet)
			require.NoError(t, err)
		}
		if n%2 == 1 {
			odd++
		}
	}

	sum, err := svc.Summary(ctx, domain.KindLikesTweet, tweet, domain.Anonymous())
	require.NoError(t, err)
	assert.Equal(t, odd, sum.Count)
}

func TestToggle_KindIsolation(t *testing.T) {
	store := newMemStore()
	shared, actor := uuid.New(), uuid.New()
	store.addTarget(domain.KindLikesComment, shared)
	store.addTarget(domain.KindLikesVideo, shared)
	store.addTarget(domain.KindLikesTweet, shared)
	svc := newService(store)
	ctx := context.Background()

	state, err := svc.ToggleCommentLike(ctx, actor, shared)
	require.NoError(t, err)
	assert.Equal(t, domain.StateLiked, state)

	for _, k := range []domain.RelationKind{domain.KindLikesVideo, domain.KindLikesTweet} {
		sum, err := svc.Summary(ctx, k, shared, domain.Viewer(actor))
		require.NoError(t, err)
		assert.Zero(t, sum.Count, k)
		assert.False(t, sum.IsActive, k)
	}

	// liking the video with the same id is its own relation
	state, err = svc.ToggleVideoLike(ctx, actor, shared)
	require.NoError(t, err)
	assert.Equal(t, domain.StateLiked, state)
}

func TestToggle_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("target not found", func(t *testing.T) {
		svc := newService(newMemStore())
		_, err := svc.ToggleVideoLike(ctx, uuid.New(), uuid.New())
		assert.True(t, domain.IsCode(err, domain.CodeNotFound))
	})

	t.Run("kind checks its own table", func(t *testing.T) {
		store := newMemStore()
		id := uuid.New()
		store.addTarget(domain.KindLikesVideo, id)
		_, err := newService(store).ToggleTweetLike(ctx, uuid.New(), id)
		assert.True(t, domain.IsCode(err, domain.CodeNotFound))
	})

	t.Run("invalid kind", func(t *testing.T) {
		_, err := newService(newMemStore()).Toggle(ctx, uuid.New(), "follows", uuid.New())
		assert.True(t, domain.IsCode(err, domain.CodeValidation))
	})

	t.Run("missing actor", func(t *testing.T) {
		_, err := newService(newMemStore()).ToggleVideoLike(ctx, uuid.Nil, uuid.New())
		assert.True(t, domain.IsCode(err, domain.CodeValidation))
	})

	t.Run("delete failure is internal and does not fall through to insert", func(t *testing.T) {
		store := newMemStore()
		video, actor := uuid.New(), uuid.New()
		store.addTarget(domain.KindLikesVideo, video)
		svc := newService(store)

		_, err := svc.ToggleVideoLike(ctx, actor, video)
		require.NoError(t, err)

		store.deleteErr = domain.ErrInternal("storage failure", errors.New("conn reset"))
		_, err = svc.ToggleVideoLike(ctx, actor, video)
		assert.True(t, domain.IsCode(err, domain.CodeInternal))
		assert.Len(t, store.rels, 1)
	})

	t.Run("vanished row is a conflict", func(t *testing.T) {
		store := newMemStore()
		video, actor := uuid.New(), uuid.New()
		store.addTarget(domain.KindLikesVideo, video)
		svc := newService(store)

		_, err := svc.ToggleVideoLike(ctx, actor, video)
		require.NoError(t, err)

		store.deleteNoop = true
		_, err = svc.ToggleVideoLike(ctx, actor, video)
		assert.True(t, domain.IsCode(err, domain.CodeConflict))
	})

	t.Run("duplicate insert is a conflict", func(t *testing.T) {
		store := newMemStore()
		video := uuid.New()
		store.addTarget(domain.KindLikesVideo, video)
		store.insertErr = domain.ErrConflict("relation already exists")

		_, err := newService(store).ToggleVideoLike(ctx, uuid.New(), video)
		assert.True(t, domain.IsCode(err, domain.CodeConflict))
	})
}

func TestToggle_ConcurrentActors(t *testing.T) {
	store := newMemStore()
	channel := uuid.New()
	store.addTarget(domain.KindSubscribes, channel)
	svc := newService(store)
	ctx := context.Background()

	const n = 40
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.ToggleSubscription(ctx, uuid.New(), channel)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	page, err := svc.Subscribers(ctx, channel, domain.Anonymous(), domain.NewPageRequest(1, 100, "", ""))
	require.NoError(t, err)
	assert.Equal(t, n, page.TotalItems)
	assert.Equal(t, 1, page.TotalPages)
}

func TestSummary_AnonymousViewer(t *testing.T) {
	store := newMemStore()
	video, actor := uuid.New(), uuid.New()
	store.addTarget(domain.KindLikesVideo, video)
	svc := newService(store)
	ctx := context.Background()

	_, err := svc.ToggleVideoLike(ctx, actor, video)
	require.NoError(t, err)

	sum, err := svc.Summary(ctx, domain.KindLikesVideo, video, domain.Anonymous())
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Count)
	assert.False(t, sum.IsActive)
}

func TestHiddenVideo_OnlyOwnerCanLike(t *testing.T) {
	store := newMemStore()
	video, owner, stranger := uuid.New(), uuid.New(), uuid.New()
	store.addTarget(domain.KindLikesVideo, video)
	store.hidden[video] = owner
	svc := newService(store)
	ctx := context.Background()

	_, err := svc.ToggleVideoLike(ctx, stranger, video)
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))

	_, err = svc.Summary(ctx, domain.KindLikesVideo, video, domain.Viewer(stranger))
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))
	_, err = svc.Summary(ctx, domain.KindLikesVideo, video, domain.Anonymous())
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))

	state, err := svc.ToggleVideoLike(ctx, owner, video)
	require.NoError(t, err)
	assert.Equal(t, domain.StateLiked, state)

	sum, err := svc.Summary(ctx, domain.KindLikesVideo, video, domain.Viewer(owner))
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Count)
	assert.True(t, sum.IsActive)
}

func TestSubscribers_Validation(t *testing.T) {
	svc := newService(newMemStore())
	ctx := context.Background()

	_, err := svc.Subscribers(ctx, uuid.New(), domain.Anonymous(), domain.NewPageRequest(1, 10, "", ""))
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))

	_, err = svc.Subscribers(ctx, uuid.New(), domain.Anonymous(), domain.NewPageRequest(1, 10, "email", ""))
	assert.True(t, domain.IsCode(err, domain.CodeValidation))

	_, err = svc.LikedVideos(ctx, uuid.New(), domain.NewPageRequest(1, 10, "title", ""))
	assert.True(t, domain.IsCode(err, domain.CodeValidation))
}

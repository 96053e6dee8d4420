package item_test

import (
	"context"
	"testing"
	"time"

	"itemshare/apperr"
	"itemshare/db"
	"itemshare/models"
	itemsvc "itemshare/service/item"

	"github.com/stretchr/testify/require"
)

type repoMock struct {
	findUserFn    func(ctx context.Context, id uint) (*models.User, error)
	createItemFn  func(ctx context.Context, it *models.Item) error
	findItemFn    func(ctx context.Context, id uint) (*models.Item, error)
	saveItemFn    func(ctx context.Context, it *models.Item) error
	listOwnerFn   func(ctx context.Context, ownerID uint, offset, limit int) ([]models.Item, error)
	searchFn      func(ctx context.Context, text string, offset, limit int) ([]models.Item, error)
	findRequestFn func(ctx context.Context, id uint) (*models.ItemRequest, error)
	createCmtFn   func(ctx context.Context, c *models.Comment) error
	commentsFn    func(ctx context.Context, itemID uint) ([]models.Comment, error)
	lastFn        func(ctx context.Context, itemID uint, now time.Time) (*models.Booking, error)
	nextFn        func(ctx context.Context, itemID uint, now time.Time) (*models.Booking, error)
	finishedFn    func(ctx context.Context, bookerID, itemID uint, now time.Time) (bool, error)
}

var _ itemsvc.Repo = (*repoMock)(nil)

func (m *repoMock) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	if m.findUserFn == nil {
		return &models.User{ID: id, Name: "user"}, nil
	}
	return m.findUserFn(ctx, id)
}

func (m *repoMock) CreateItem(ctx context.Context, it *models.Item) error {
	if m.createItemFn == nil {
		it.ID = 1
		return nil
	}
	return m.createItemFn(ctx, it)
}

func (m *repoMock) FindItemByID(ctx context.Context, id uint) (*models.Item, error) {
	if m.findItemFn == nil {
		return nil, db.ErrNotFound
	}
	return m.findItemFn(ctx, id)
}

func (m *repoMock) SaveItem(ctx context.Context, it *models.Item) error {
	if m.saveItemFn == nil {
		return nil
	}
	return m.saveItemFn(ctx, it)
}

func (m *repoMock) ListItemsByOwner(ctx context.Context, ownerID uint, offset, limit int) ([]models.Item, error) {
	if m.listOwnerFn == nil {
		return nil, nil
	}
	return m.listOwnerFn(ctx, ownerID, offset, limit)
}

func (m *repoMock) SearchItems(ctx context.Context, text string, offset, limit int) ([]models.Item, error) {
	if m.searchFn == nil {
		return nil, nil
	}
	return m.searchFn(ctx, text, offset, limit)
}

func (m *repoMock) FindRequestByID(ctx context.Context, id uint) (*models.ItemRequest, error) {
	if m.findRequestFn == nil {
		return nil, db.ErrNotFound
	}
	return m.findRequestFn(ctx, id)
}

func (m *repoMock) CreateComment(ctx context.Context, c *models.Comment) error {
	if m.createCmtFn == nil {
		c.ID = 1
		c.CreatedAt = time.Now()
		return nil
	}
	return m.createCmtFn(ctx, c)
}

func (m *repoMock) CommentsForItem(ctx context.Context, itemID uint) ([]models.Comment, error) {
	if m.commentsFn == nil {
		return nil, nil
	}
	return m.commentsFn(ctx, itemID)
}

func (m *repoMock) LastBookingForItem(ctx context.Context, itemID uint, now time.Time) (*models.Booking, error) {
	if m.lastFn == nil {
		return nil, nil
	}
	return m.lastFn(ctx, itemID, now)
}

func (m *repoMock) NextBookingForItem(ctx context.Context, itemID uint, now time.Time) (*models.Booking, error) {
	if m.nextFn == nil {
		return nil, nil
	}
	return m.nextFn(ctx, itemID, now)
}

func (m *repoMock) HasFinishedBooking(ctx context.Context, bookerID, itemID uint, now time.Time) (bool, error) {
	if m.finishedFn == nil {
		return false, nil
	}
	return m.finishedFn(ctx, bookerID, itemID, now)
}

// cacheMock records traffic so tests can assert hit/miss/invalidate behavior.
type cacheMock struct {
	pages       map[string][]models.Item
	stores      int
	invalidates int
}

var _ itemsvc.SearchCache = (*cacheMock)(nil)

func (c *cacheMock) Lookup(ctx context.Context, text string, from, size int) ([]models.Item, bool) {
	items, ok := c.pages[text]
	return items, ok
}

func (c *cacheMock) Store(ctx context.Context, text string, from, size int, items []models.Item) {
	c.stores++
}

func (c *cacheMock) Invalidate(ctx context.Context) { c.invalidates++ }

func avail(v bool) *bool { return &v }

func TestCreate_Validation(t *testing.T) {
	s := itemsvc.New(&repoMock{}, nil)
	ctx := context.Background()

	_, err := s.Create(ctx, 1, itemsvc.NewItem{Name: "drill", Description: "good drill"})
	require.Equal(t, apperr.KindInvalid, apperr.KindOf(err))

	_, err = s.Create(ctx, 1, itemsvc.NewItem{Description: "good drill", Available: avail(true)})
	require.Equal(t, apperr.KindInvalid, apperr.KindOf(err))

	_, err = s.Create(ctx, 1, itemsvc.NewItem{Name: "drill", Available: avail(true)})
	require.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestCreate_UnknownOwner(t *testing.T) {
	m := &repoMock{
		findUserFn: func(ctx context.Context, id uint) (*models.User, error) { return nil, db.ErrNotFound },
	}
	s := itemsvc.New(m, nil)
	_, err := s.Create(context.Background(), 9, itemsvc.NewItem{Name: "drill", Description: "good drill", Available: avail(true)})
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCreate_LinksKnownRequestOnly(t *testing.T) {
	m := &repoMock{
		findRequestFn: func(ctx context.Context, id uint) (*models.ItemRequest, error) {
			if id == 5 {
				return &models.ItemRequest{ID: 5}, nil
			}
			return nil, db.ErrNotFound
		},
	}
	s := itemsvc.New(m, nil)
	ctx := context.Background()

	it, err := s.Create(ctx, 1, itemsvc.NewItem{Name: "drill", Description: "good drill", Available: avail(true), RequestID: 5})
	require.NoError(t, err)
	require.NotNil(t, it.RequestID)
	require.Equal(t, uint(5), *it.RequestID)

	// unknown request id is dropped silently
	it, err = s.Create(ctx, 1, itemsvc.NewItem{Name: "drill", Description: "good drill", Available: avail(true), RequestID: 6})
	require.NoError(t, err)
	require.Nil(t, it.RequestID)
}

func TestUpdate_OwnerOnlyPartial(t *testing.T) {
	stored := models.Item{ID: 3, Name: "drill", Description: "good drill", Available: true, OwnerID: 1}
	m := &repoMock{
		findItemFn: func(ctx context.Context, id uint) (*models.Item, error) {
			cp := stored
			return &cp, nil
		},
	}
	s := itemsvc.New(m, nil)
	ctx := context.Background()

	_, err := s.Update(ctx, 3, 2, itemsvc.Patch{Available: avail(false)})
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	it, err := s.Update(ctx, 3, 1, itemsvc.Patch{Available: avail(false)})
	require.NoError(t, err)
	require.False(t, it.Available)
	require.Equal(t, "drill", it.Name)
	require.Equal(t, "good drill", it.Description)
}

func TestGet_BookingEdgesOnlyForOwner(t *testing.T) {
	m := &repoMock{
		findItemFn: func(ctx context.Context, id uint) (*models.Item, error) {
			return &models.Item{ID: 3, Name: "drill", Description: "good drill", Available: true, OwnerID: 1}, nil
		},
		lastFn: func(ctx context.Context, itemID uint, now time.Time) (*models.Booking, error) {
			return &models.Booking{ID: 21, BookerID: 2}, nil
		},
		nextFn: func(ctx context.Context, itemID uint, now time.Time) (*models.Booking, error) {
			return &models.Booking{ID: 22, BookerID: 4}, nil
		},
		commentsFn: func(ctx context.Context, itemID uint) ([]models.Comment, error) {
			return []models.Comment{{ID: 1, Text: "worked great", Author: models.User{Name: "Bob"}}}, nil
		},
	}
	s := itemsvc.New(m, nil)
	ctx := context.Background()

	asOwner, err := s.Get(ctx, 3, 1)
	require.NoError(t, err)
	require.NotNil(t, asOwner.LastBooking)
	require.Equal(t, uint(21), asOwner.LastBooking.ID)
	require.Equal(t, uint(2), asOwner.LastBooking.BookerID)
	require.NotNil(t, asOwner.NextBooking)
	require.Equal(t, uint(22), asOwner.NextBooking.ID)

	asViewer, err := s.Get(ctx, 3, 2)
	require.NoError(t, err)
	require.Nil(t, asViewer.LastBooking)
	require.Nil(t, asViewer.NextBooking)

	// comments come back for everyone, with the author name resolved
	require.Len(t, asViewer.Comments, 1)
	require.Equal(t, "Bob", asViewer.Comments[0].AuthorName)
}

func TestSearch_BlankTextShortCircuits(t *testing.T) {
	called := false
	m := &repoMock{
		searchFn: func(ctx context.Context, text string, offset, limit int) ([]models.Item, error) {
			called = true
			return nil, nil
		},
	}
	s := itemsvc.New(m, nil)

	items, err := s.Search(context.Background(), "   ", 0, 10)
	require.NoError(t, err)
	require.Empty(t, items)
	require.False(t, called)
}

func TestSearch_PagingGuard(t *testing.T) {
	s := itemsvc.New(&repoMock{}, nil)
	_, err := s.Search(context.Background(), "drill", 0, 0)
	require.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestSearch_CacheHitSkipsStorage(t *testing.T) {
	called := false
	m := &repoMock{
		searchFn: func(ctx context.Context, text string, offset, limit int) ([]models.Item, error) {
			called = true
			return []models.Item{{ID: 1}}, nil
		},
	}
	c := &cacheMock{pages: map[string][]models.Item{"drill": {{ID: 7}}}}
	s := itemsvc.New(m, c)

	items, err := s.Search(context.Background(), "drill", 0, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, uint(7), items[0].ID)
	require.False(t, called)

	// miss goes to storage and fills the cache
	items, err = s.Search(context.Background(), "saw", 0, 10)
	require.NoError(t, err)
	require.True(t, called)
	require.Equal(t, 1, c.stores)
	require.Equal(t, uint(1), items[0].ID)
}

func TestWrites_InvalidateSearchCache(t *testing.T) {
	stored := models.Item{ID: 3, Name: "drill", Description: "good drill", Available: true, OwnerID: 1}
	m := &repoMock{
		findItemFn: func(ctx context.Context, id uint) (*models.Item, error) {
			cp := stored
			return &cp, nil
		},
	}
	c := &cacheMock{}
	s := itemsvc.New(m, c)
	ctx := context.Background()

	_, err := s.Create(ctx, 1, itemsvc.NewItem{Name: "drill", Description: "good drill", Available: avail(true)})
	require.NoError(t, err)
	require.Equal(t, 1, c.invalidates)

	_, err = s.Update(ctx, 3, 1, itemsvc.Patch{Available: avail(false)})
	require.NoError(t, err)
	require.Equal(t, 2, c.invalidates)
}

func TestAddComment_RequiresFinishedBooking(t *testing.T) {
	m := &repoMock{
		findItemFn: func(ctx context.Context, id uint) (*models.Item, error) {
			return &models.Item{ID: 3, OwnerID: 1}, nil
		},
	}
	s := itemsvc.New(m, nil)

	_, err := s.AddComment(context.Background(), 2, 3, "worked great")
	require.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
	require.EqualError(t, err, "user did not book this item")
}

func TestAddComment_BlankText(t *testing.T) {
	m := &repoMock{
		findItemFn: func(ctx context.Context, id uint) (*models.Item, error) {
			return &models.Item{ID: 3, OwnerID: 1}, nil
		},
		finishedFn: func(ctx context.Context, bookerID, itemID uint, now time.Time) (bool, error) {
			return true, nil
		},
	}
	s := itemsvc.New(m, nil)

	_, err := s.AddComment(context.Background(), 2, 3, "  ")
	require.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestAddComment_Success(t *testing.T) {
	m := &repoMock{
		findUserFn: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Name: "Bob"}, nil
		},
		findItemFn: func(ctx context.Context, id uint) (*models.Item, error) {
			return &models.Item{ID: 3, OwnerID: 1}, nil
		},
		finishedFn: func(ctx context.Context, bookerID, itemID uint, now time.Time) (bool, error) {
			return true, nil
		},
	}
	s := itemsvc.New(m, nil)

	cv, err := s.AddComment(context.Background(), 2, 3, "worked great")
	require.NoError(t, err)
	require.Equal(t, "worked great", cv.Text)
	require.Equal(t, "Bob", cv.AuthorName)
	require.False(t, cv.Created.IsZero())
}

package services

import (
	"context"
	"log"

	"github.com/cashpoint/atm-client/internal/apperrors"
	"github.com/cashpoint/atm-client/internal/models"
	"github.com/cashpoint/atm-client/internal/session"
)

// HistoryService pages through transaction history. It remembers the last
// successful page so a failed fetch never blanks what the user is looking
// at. Page state belongs to one account; it is dropped as soon as a
// different session (or none) is active.
type HistoryService struct {
	gateway  Gateway
	sessions *session.Store
	pageSize int

	accountID  int64
	pageNo     int
	totalPages int
	content    []models.Transaction
}

func NewHistoryService(gateway Gateway, sessions *session.Store, pageSize int) *HistoryService {
	return &HistoryService{
		gateway:  gateway,
		sessions: sessions,
		pageSize: pageSize,
		pageNo:   1,
	}
}

// LoadPage fetches the requested page and replaces the cached content and
// totalPages wholesale. The requested page number is taken at face value
// beyond the lower bound; the server answers for pages past the known
// range, since the cached totalPages may already be stale.
func (hs *HistoryService) LoadPage(ctx context.Context, pageNo int) (models.HistoryPage, error) {
	sess := hs.sessions.Current()
	if sess == nil {
		return models.HistoryPage{}, &apperrors.SessionAbsentError{}
	}
	hs.resetIfStale(sess.Account.ID)

	if pageNo < 1 {
		pageNo = 1
	}

	page, err := hs.gateway.FetchHistory(ctx, sess.Account.ID, pageNo, hs.pageSize)
	if err != nil {
		log.Printf("[HISTORY] Fetch of page %d failed: %v", pageNo, err)
		return models.HistoryPage{}, err
	}

	hs.pageNo = pageNo
	hs.totalPages = page.TotalPages
	hs.content = page.Content
	return page, nil
}

// Next advances one page; a no-op on the last page.
func (hs *HistoryService) Next(ctx context.Context) (models.HistoryPage, error) {
	sess := hs.sessions.Current()
	if sess == nil {
		return models.HistoryPage{}, &apperrors.SessionAbsentError{}
	}
	hs.resetIfStale(sess.Account.ID)

	if hs.pageNo >= hs.totalPages {
		return hs.currentPage(), nil
	}
	return hs.LoadPage(ctx, hs.pageNo+1)
}

// Prev steps back one page; a no-op on the first page.
func (hs *HistoryService) Prev(ctx context.Context) (models.HistoryPage, error) {
	sess := hs.sessions.Current()
	if sess == nil {
		return models.HistoryPage{}, &apperrors.SessionAbsentError{}
	}
	hs.resetIfStale(sess.Account.ID)

	if hs.pageNo <= 1 {
		return hs.currentPage(), nil
	}
	return hs.LoadPage(ctx, hs.pageNo-1)
}

// PageNo reports the current 1-indexed page.
func (hs *HistoryService) PageNo() int {
	return hs.pageNo
}

// TotalPages reports the page count from the last successful fetch, 0
// before any fetch.
func (hs *HistoryService) TotalPages() int {
	return hs.totalPages
}

// resetIfStale drops page state built for a different account than the
// active session's.
func (hs *HistoryService) resetIfStale(accountID int64) {
	if hs.accountID == accountID {
		return
	}
	hs.accountID = accountID
	hs.pageNo = 1
	hs.totalPages = 0
	hs.content = nil
}

func (hs *HistoryService) currentPage() models.HistoryPage {
	return models.HistoryPage{
		Content:    hs.content,
		PageNo:     hs.pageNo,
		PageSize:   hs.pageSize,
		TotalPages: hs.totalPages,
	}
}

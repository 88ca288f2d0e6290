package usecase

import (
	"context"
	"errors"

	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/entity"
	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/history"
	"github.com/shandysiswandi/goflightsearch/internal/pkg/pkgerror"
)

var errHistoryDisabled = pkgerror.NewBusiness("search history is disabled", pkgerror.CodeUnavailable)

func (u *Usecase) History(ctx context.Context, limit int) ([]entity.SearchHistory, error) {
	if u.history == nil {
		return nil, errHistoryDisabled
	}
	if limit > history.MaxEntries {
		limit = history.MaxEntries
	}
	return u.history.List(ctx, limit)
}

func (u *Usecase) RemoveHistory(ctx context.Context, id string) error {
	if u.history == nil {
		return errHistoryDisabled
	}
	if id == "" {
		return invalid("history id is required")
	}
	err := u.history.Remove(ctx, id)
	if errors.Is(err, history.ErrNotFound) {
		return pkgerror.NewBusiness("search history entry not found", pkgerror.CodeNotFound)
	}
	return err
}

func (u *Usecase) ClearHistory(ctx context.Context) error {
	if u.history == nil {
		return errHistoryDisabled
	}
	return u.history.Clear(ctx)
}

package browse

import (
	"context"

	"github.com/DjordjeVuckovic/title-hunter/internal/cache"
	"github.com/DjordjeVuckovic/title-hunter/internal/domain"
	"github.com/DjordjeVuckovic/title-hunter/internal/resultset"
	"github.com/DjordjeVuckovic/title-hunter/pkg/pagination"
)

// PeoplePageSize is the page size of the people listing.
const PeoplePageSize = 24

type PeopleSource interface {
	People(ctx context.Context, page, size int) (*resultset.Set[domain.Person], error)
}

type PeopleView struct {
	Items  []domain.Person   `json:"items"`
	Window pagination.Window `json:"window"`
	Label  string            `json:"label"`
}

type peopleKey struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// People loads one page of people. When the API answers with more items
// than a page holds the list is paged locally.
func People(ctx context.Context, src PeopleSource, c *cache.Cache, page int) (PeopleView, error) {
	page = max(1, page)
	fetch := func(ctx context.Context) (*resultset.Set[domain.Person], error) {
		return src.People(ctx, page, PeoplePageSize)
	}

	var (
		set *resultset.Set[domain.Person]
		err error
	)
	if c != nil {
		set, err = cache.Fetch(ctx, c, cache.KindPeople, peopleKey{Page: page, Size: PeoplePageSize}, fetch)
	} else {
		set, err = fetch(ctx)
	}
	if err != nil {
		return PeopleView{}, err
	}

	size := PeoplePageSize
	if set.PageSize != nil && *set.PageSize > 0 {
		size = *set.PageSize
	}

	view := PeopleView{Label: resultset.Label(set, false)}
	if len(set.Items) > size {
		view.Window = pagination.NewWindow(page, set.Total, PeoplePageSize)
		view.Items = set.LocalPage(view.Window.CurrentPage, PeoplePageSize)
		return view, nil
	}

	view.Window = pagination.NewWindow(page, set.Total, size)
	view.Items = set.Items
	return view, nil
}

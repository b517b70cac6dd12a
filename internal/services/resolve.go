package services

import (
	"context"
	"fmt"
	"strings"

	"orgcalendar/internal/domain"
)

// refResolver batches user reference lookups so a response costs one query.
type refResolver struct {
	userRepo domain.UserRepository
}

// resolve returns the summaries for ids keyed by id. Unknown or empty ids are absent.
func (r refResolver) resolve(ctx context.Context, ids ...string) (map[string]*domain.UserRef, error) {
	seen := make(map[string]struct{}, len(ids))
	uniq := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, id)
	}
	refs := make(map[string]*domain.UserRef, len(uniq))
	if len(uniq) == 0 {
		return refs, nil
	}
	found, err := r.userRepo.ListRefsByIDs(ctx, uniq)
	if err != nil {
		return nil, fmt.Errorf("resolve users: %w", err)
	}
	for _, ref := range found {
		refs[ref.ID] = ref
	}
	return refs, nil
}

// parseRange validates optional inclusive date bounds, recording failures in ve.
func parseRange(ve *domain.ValidationError, start, end string) domain.DateRange {
	var r domain.DateRange
	if start = strings.TrimSpace(start); start != "" {
		if d, err := domain.ParseDate(start); err != nil {
			ve.Add("startDate", "Valid start date is required")
		} else {
			r.From = &d
		}
	}
	if end = strings.TrimSpace(end); end != "" {
		if d, err := domain.ParseDate(end); err != nil {
			ve.Add("endDate", "Valid end date is required")
		} else {
			r.To = &d
		}
	}
	return r
}

// trimmed returns the trimmed value of p and whether p was supplied.
func trimmed(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	return strings.TrimSpace(*p), true
}

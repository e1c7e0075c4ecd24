package engine

import (
	"context"

	"canteiro/internal/core/grouping"
	"canteiro/internal/core/ratio"
	"canteiro/internal/core/records"
	"canteiro/internal/services/api/reports/domain"
)

// AdherencePercentage lists every project in scope with the share of the
// organization's players who authored a kaizen there
// the denominator is organization wide, not per project
func (e Engine) AdherencePercentage(ctx context.Context, src domain.Source, q domain.Query) (domain.Items[domain.AdherenceRow], error) {
	set, err := e.loadKaizens(ctx, src, q, false)
	if err != nil || set.scope.Empty() {
		return domain.ItemsOf[domain.AdherenceRow](nil), err
	}
	players, err := e.playerCount(ctx, src, q.OrganizationID)
	if err != nil {
		return domain.ItemsOf[domain.AdherenceRow](nil), err
	}
	names, err := e.projectNames(ctx, src, set.scope.ProjectIDs)
	if err != nil {
		return domain.ItemsOf[domain.AdherenceRow](nil), err
	}

	authors := make(map[string]int)
	for _, b := range grouping.Group(set.kaizens, projectOf) {
		authors[b.Key] = distinct(b.Items, authorOf)
	}
	joined := grouping.OuterJoin(set.scope.ProjectIDs, authors)

	out := make([]domain.AdherenceRow, 0, len(joined))
	for _, kc := range joined {
		out = append(out, domain.AdherenceRow{
			ProjectID:        kc.Key,
			ProjectName:      grouping.Label(kc.Key, names, grouping.PlaceholderUnknown),
			ParticipantCount: kc.Count,
			PlayerCount:      players,
			Percentage:       ratio.Percent(kc.Count, players),
		})
	}
	grouping.SortDesc(out, func(r domain.AdherenceRow) float64 { return r.Percentage })
	return domain.ItemsOf(out), nil
}

// AdherenceCount is adherence over the whole scope, optionally for one kaizen type
func (e Engine) AdherenceCount(ctx context.Context, src domain.Source, in domain.AdherenceCountInput) (domain.AdherenceCount, error) {
	set, err := e.loadKaizens(ctx, src, in.Query, false)
	if err != nil || set.scope.Empty() {
		return domain.AdherenceCount{}, err
	}
	kaizens := set.kaizens
	if in.KaizenTypeID != "" {
		kaizens = filter(kaizens, func(k records.Kaizen) bool {
			return k.KaizenTypeID != nil && *k.KaizenTypeID == in.KaizenTypeID
		})
	}
	players, err := e.playerCount(ctx, src, in.OrganizationID)
	if err != nil {
		return domain.AdherenceCount{}, err
	}
	participants := distinct(kaizens, authorOf)
	return domain.AdherenceCount{
		ParticipantCount: participants,
		PlayerCount:      players,
		Percentage:       ratio.Percent(participants, players),
	}, nil
}

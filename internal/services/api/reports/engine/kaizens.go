package engine

import (
	"context"

	"canteiro/internal/core/grouping"
	"canteiro/internal/core/ratio"
	"canteiro/internal/core/records"
	"canteiro/internal/core/replication"
	"canteiro/internal/services/api/reports/domain"
)

const dateLayout = "2006-01-02"

// KaizenCounters reports totals for the scope
// project_count counts projects with at least one kaizen
func (e Engine) KaizenCounters(ctx context.Context, src domain.Source, q domain.Query) (domain.KaizenCounters, error) {
	set, err := e.loadKaizens(ctx, src, q, false)
	if err != nil || len(set.kaizens) == 0 {
		return domain.KaizenCounters{}, err
	}
	n := len(set.kaizens)
	projects := distinct(set.kaizens, projectOf)
	authors := distinct(set.kaizens, authorOf)
	return domain.KaizenCounters{
		KaizenCount:           n,
		ProjectCount:          projects,
		KaizensPerProject:     ratio.Of(n, projects),
		KaizensPerParticipant: ratio.Of(n, authors),
	}, nil
}

// KaizensPerProject counts kaizens per project
func (e Engine) KaizensPerProject(ctx context.Context, src domain.Source, q domain.Query) (domain.Items[domain.ProjectCount], error) {
	set, err := e.loadKaizens(ctx, src, q, false)
	if err != nil || len(set.kaizens) == 0 {
		return domain.ItemsOf[domain.ProjectCount](nil), err
	}
	buckets := grouping.Group(set.kaizens, projectOf)
	grouping.SortByCount(buckets)

	names, err := e.projectNames(ctx, src, bucketKeys(buckets))
	if err != nil {
		return domain.ItemsOf[domain.ProjectCount](nil), err
	}
	out := make([]domain.ProjectCount, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, domain.ProjectCount{
			ProjectID:   b.Key,
			ProjectName: grouping.Label(b.Key, names, grouping.PlaceholderUnknown),
			KaizenCount: b.Count,
		})
	}
	return domain.ItemsOf(out), nil
}

// KaizensPerType counts kaizens per kaizen type; untyped kaizens share one null bucket
func (e Engine) KaizensPerType(ctx context.Context, src domain.Source, q domain.Query) (domain.Items[domain.TypeCount], error) {
	set, err := e.loadKaizens(ctx, src, q, false)
	if err != nil || len(set.kaizens) == 0 {
		return domain.ItemsOf[domain.TypeCount](nil), err
	}
	buckets := grouping.Group(set.kaizens, typeKey)
	grouping.SortByCount(buckets)

	names, err := e.typeNames(ctx, src, validKeys(bucketKeys(buckets)))
	if err != nil {
		return domain.ItemsOf[domain.TypeCount](nil), err
	}
	out := make([]domain.TypeCount, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, domain.TypeCount{
			KaizenTypeID:   b.Key.Ptr(),
			KaizenTypeName: typeLabel(b.Key, names),
			KaizenCount:    b.Count,
		})
	}
	return domain.ItemsOf(out), nil
}

// KaizensPerTypePerProject breaks each type down over every project in scope,
// listing projects without kaizens of that type with 0
func (e Engine) KaizensPerTypePerProject(ctx context.Context, src domain.Source, q domain.Query) (domain.Items[domain.TypeProjectRow], error) {
	set, err := e.loadKaizens(ctx, src, q, false)
	if err != nil || len(set.kaizens) == 0 {
		return domain.ItemsOf[domain.TypeProjectRow](nil), err
	}
	buckets := grouping.Group(set.kaizens, typeKey)
	grouping.SortByCount(buckets)

	typeNames, err := e.typeNames(ctx, src, validKeys(bucketKeys(buckets)))
	if err != nil {
		return domain.ItemsOf[domain.TypeProjectRow](nil), err
	}
	projectNames, err := e.projectNames(ctx, src, set.scope.ProjectIDs)
	if err != nil {
		return domain.ItemsOf[domain.TypeProjectRow](nil), err
	}

	out := make([]domain.TypeProjectRow, 0, len(buckets))
	for _, b := range buckets {
		counts := grouping.Counts(grouping.Group(b.Items, projectOf))
		joined := grouping.OuterJoin(set.scope.ProjectIDs, counts)
		projects := make([]domain.ProjectCount, 0, len(joined))
		for _, kc := range joined {
			projects = append(projects, domain.ProjectCount{
				ProjectID:   kc.Key,
				ProjectName: grouping.Label(kc.Key, projectNames, grouping.PlaceholderUnknown),
				KaizenCount: kc.Count,
			})
		}
		grouping.SortDesc(projects, func(p domain.ProjectCount) float64 { return float64(p.KaizenCount) })
		out = append(out, domain.TypeProjectRow{
			KaizenTypeID:   b.Key.Ptr(),
			KaizenTypeName: typeLabel(b.Key, typeNames),
			KaizenCount:    b.Count,
			Projects:       projects,
		})
	}
	return domain.ItemsOf(out), nil
}

// KaizensPerSector counts kaizens by the author's sector; unknown authors land in the null bucket
func (e Engine) KaizensPerSector(ctx context.Context, src domain.Source, q domain.Query) (domain.Items[domain.SectorCount], error) {
	set, err := e.loadKaizens(ctx, src, q, true)
	if err != nil || len(set.kaizens) == 0 {
		return domain.ItemsOf[domain.SectorCount](nil), err
	}
	buckets := grouping.Group(set.kaizens, func(k records.Kaizen) grouping.NullKey {
		return grouping.NullableKey(set.members[k.AuthorID].Sector)
	})
	grouping.SortByCount(buckets)

	out := make([]domain.SectorCount, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, domain.SectorCount{Sector: b.Key.Ptr(), KaizenCount: b.Count})
	}
	return domain.ItemsOf(out), nil
}

// KaizensPerPosition counts kaizens by the author's position
func (e Engine) KaizensPerPosition(ctx context.Context, src domain.Source, q domain.Query) (domain.Items[domain.PositionCount], error) {
	set, err := e.loadKaizens(ctx, src, q, true)
	if err != nil || len(set.kaizens) == 0 {
		return domain.ItemsOf[domain.PositionCount](nil), err
	}
	buckets := grouping.Group(set.kaizens, func(k records.Kaizen) grouping.NullKey {
		return grouping.NullableKey(set.members[k.AuthorID].Position)
	})
	grouping.SortByCount(buckets)

	out := make([]domain.PositionCount, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, domain.PositionCount{Position: b.Key.Ptr(), KaizenCount: b.Count})
	}
	return domain.ItemsOf(out), nil
}

// KaizensPerBenefit counts kaizens per kpi named in their benefits
// a kaizen naming the same kpi twice counts once for it
func (e Engine) KaizensPerBenefit(ctx context.Context, src domain.Source, q domain.Query) (domain.Items[domain.BenefitCount], error) {
	set, err := e.loadKaizens(ctx, src, q, false)
	if err != nil || len(set.kaizens) == 0 {
		return domain.ItemsOf[domain.BenefitCount](nil), err
	}
	buckets := grouping.GroupMany(set.kaizens, func(k records.Kaizen) []string {
		ids := make([]string, 0, len(k.Benefits))
		for _, b := range k.Benefits {
			if b.KPIID != "" {
				ids = append(ids, b.KPIID)
			}
		}
		return ids
	})
	grouping.SortByCount(buckets)

	names, err := e.kpiNames(ctx, src, bucketKeys(buckets))
	if err != nil {
		return domain.ItemsOf[domain.BenefitCount](nil), err
	}
	out := make([]domain.BenefitCount, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, domain.BenefitCount{
			KPIID:       b.Key,
			KPIName:     grouping.Label(b.Key, names, grouping.PlaceholderUnknown),
			KaizenCount: b.Count,
		})
	}
	return domain.ItemsOf(out), nil
}

// KaizensPerWeek counts kaizens per ISO week of their creation date
// weeks are ordered by count like every grouped report
func (e Engine) KaizensPerWeek(ctx context.Context, src domain.Source, q domain.Query) (domain.Items[domain.WeekCount], error) {
	set, err := e.loadKaizens(ctx, src, q, false)
	if err != nil || len(set.kaizens) == 0 {
		return domain.ItemsOf[domain.WeekCount](nil), err
	}
	buckets := grouping.Group(set.kaizens, func(k records.Kaizen) grouping.WeekRange {
		return grouping.Week(k.CreatedDate)
	})
	grouping.SortByCount(buckets)

	out := make([]domain.WeekCount, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, domain.WeekCount{
			WeekStart:   b.Key.Start.Format(dateLayout),
			WeekEnd:     b.Key.End.Format(dateLayout),
			KaizenCount: b.Count,
		})
	}
	return domain.ItemsOf(out), nil
}

// KaizensPerParticipant reports kaizens per distinct author for each project with kaizens
func (e Engine) KaizensPerParticipant(ctx context.Context, src domain.Source, q domain.Query) (domain.Items[domain.ParticipantRatio], error) {
	set, err := e.loadKaizens(ctx, src, q, false)
	if err != nil || len(set.kaizens) == 0 {
		return domain.ItemsOf[domain.ParticipantRatio](nil), err
	}
	buckets := grouping.Group(set.kaizens, projectOf)
	names, err := e.projectNames(ctx, src, bucketKeys(buckets))
	if err != nil {
		return domain.ItemsOf[domain.ParticipantRatio](nil), err
	}
	out := make([]domain.ParticipantRatio, 0, len(buckets))
	for _, b := range buckets {
		participants := distinct(b.Items, authorOf)
		out = append(out, domain.ParticipantRatio{
			ProjectID:             b.Key,
			ProjectName:           grouping.Label(b.Key, names, grouping.PlaceholderUnknown),
			KaizenCount:           b.Count,
			ParticipantCount:      participants,
			KaizensPerParticipant: ratio.Of(b.Count, participants),
		})
	}
	grouping.SortDesc(out, func(r domain.ParticipantRatio) float64 { return r.KaizensPerParticipant })
	return domain.ItemsOf(out), nil
}

// MostReplicatedKaizens ranks kaizens by replication count
// is_replica and category are accepted but do not narrow the result
func (e Engine) MostReplicatedKaizens(ctx context.Context, src domain.Source, in domain.MostReplicatedInput) (domain.Items[domain.ReplicatedKaizen], error) {
	set, err := e.loadKaizens(ctx, src, in.Query, false)
	if err != nil || len(set.kaizens) == 0 {
		return domain.ItemsOf[domain.ReplicatedKaizen](nil), err
	}
	ranked := capped(replication.Ranked(set.kaizens, replication.Count(set.kaizens)), e.limit(in.Limit))
	if len(ranked) == 0 {
		return domain.ItemsOf[domain.ReplicatedKaizen](nil), nil
	}
	graph := replication.NewGraph(set.kaizens)

	ids := make([]string, 0, len(ranked))
	for _, r := range ranked {
		ids = append(ids, r.Kaizen.ProjectID)
	}
	names, err := e.projectNames(ctx, src, ids)
	if err != nil {
		return domain.ItemsOf[domain.ReplicatedKaizen](nil), err
	}
	out := make([]domain.ReplicatedKaizen, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, domain.ReplicatedKaizen{
			KaizenID:     r.Kaizen.ID,
			KaizenName:   r.Kaizen.Name,
			ProjectID:    r.Kaizen.ProjectID,
			ProjectName:  grouping.Label(r.Kaizen.ProjectID, names, grouping.PlaceholderUnknown),
			ReplicaCount: r.Count,
			RootKaizenID: graph.Root(r.Kaizen.ID, e.maxReplicaDepth),
		})
	}
	return domain.ItemsOf(out), nil
}

// TopAuthors ranks users by the number of kaizens they authored
func (e Engine) TopAuthors(ctx context.Context, src domain.Source, in domain.RankingInput) (domain.Items[domain.AuthorCount], error) {
	set, err := e.loadKaizens(ctx, src, in.Query, false)
	if err != nil || len(set.kaizens) == 0 {
		return domain.ItemsOf[domain.AuthorCount](nil), err
	}
	buckets := grouping.Group(set.kaizens, authorOf)
	grouping.SortByCount(buckets)
	buckets = capped(buckets, e.limit(in.Limit))

	users, err := src.ListUsers(ctx, bucketKeys(buckets))
	if err != nil {
		return domain.ItemsOf[domain.AuthorCount](nil), err
	}
	byID := indexBy(users, func(u records.User) string { return u.ID })
	out := make([]domain.AuthorCount, 0, len(buckets))
	for _, b := range buckets {
		u := byID[b.Key]
		out = append(out, domain.AuthorCount{UserID: b.Key, Name: u.Name, Photo: u.Photo, KaizenCount: b.Count})
	}
	return domain.ItemsOf(out), nil
}

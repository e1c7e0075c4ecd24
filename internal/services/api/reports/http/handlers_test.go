package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "canteiro/internal/platform/errors"
	pnet "canteiro/internal/platform/net"
	phttp "canteiro/internal/platform/net/http"
	"canteiro/internal/services/api/reports/domain"

	"github.com/go-chi/chi/v5"
)

const org = "9d3f6a1e-2b4c-4d8e-9f0a-1b2c3d4e5f60"

// fakeSvc answers the reports it overrides; anything else would panic on the nil port
type fakeSvc struct {
	domain.ServicePort
	gotOrg   string
	gotLimit int
	err      error
}

func (f *fakeSvc) KaizenCounters(ctx context.Context, in domain.Query) (domain.KaizenCounters, error) {
	f.gotOrg = pnet.OrganizationID(ctx)
	if f.err != nil {
		return domain.KaizenCounters{}, f.err
	}
	return domain.KaizenCounters{KaizenCount: 3, ProjectCount: 1, KaizensPerProject: 3, KaizensPerParticipant: 1.5}, nil
}

func (f *fakeSvc) TopAuthors(ctx context.Context, in domain.RankingInput) (domain.Items[domain.AuthorCount], error) {
	f.gotLimit = in.Limit
	return domain.ItemsOf[domain.AuthorCount](nil), nil
}

func mount(s *fakeSvc) (stdhttp.Handler, int) {
	m := chi.NewRouter()
	ops := Register(phttp.AdaptChi(m), s)
	return m, len(ops)
}

func postReq(h stdhttp.Handler, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(stdhttp.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)
	return rec
}

func TestRegister_MountsEveryReport(t *testing.T) {
	t.Parallel()

	m := chi.NewRouter()
	ops := Register(phttp.AdaptChi(m), &fakeSvc{})
	if len(ops) != 17 {
		t.Fatalf("ops got %d", len(ops))
	}
	var routes int
	_ = chi.Walk(m, func(method, route string, _ stdhttp.Handler, _ ...func(stdhttp.Handler) stdhttp.Handler) error {
		if method != stdhttp.MethodPost {
			t.Fatalf("%s %s is not POST", method, route)
		}
		routes++
		return nil
	})
	if routes != len(ops) {
		t.Fatalf("routes %d ops %d", routes, len(ops))
	}
	for _, op := range ops {
		if op.Summary == "" || !strings.HasPrefix(op.Path, "/") {
			t.Fatalf("bad op %+v", op)
		}
	}
}

func TestKaizenCounters_OK(t *testing.T) {
	t.Parallel()

	s := &fakeSvc{}
	h, _ := mount(s)
	rec := postReq(h, "/kaizens/counters", `{"organization_id":"`+org+`"}`)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status %d body %s", rec.Code, rec.Body)
	}
	var env struct {
		Data domain.KaizenCounters `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Data.KaizenCount != 3 || env.Data.KaizensPerParticipant != 1.5 {
		t.Fatalf("data got %+v", env.Data)
	}
	if s.gotOrg != org {
		t.Fatalf("organization on ctx got %q", s.gotOrg)
	}
}

func TestValidation_Rejects(t *testing.T) {
	t.Parallel()

	h, _ := mount(&fakeSvc{})
	cases := map[string]struct {
		path, body string
	}{
		"missing org":   {"/kaizens/counters", `{}`},
		"org not uuid":  {"/kaizens/counters", `{"organization_id":"acme"}`},
		"league bad":    {"/kaizens/counters", `{"organization_id":"` + org + `","league_id":"L1"}`},
		"limit too big": {"/kaizens/top-authors", `{"organization_id":"` + org + `","limit":501}`},
		"unknown field": {"/kaizens/counters", `{"organization_id":"` + org + `","foo":1}`},
		"empty body":    {"/kaizens/counters", ``},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if rec := postReq(h, tc.path, tc.body); rec.Code != stdhttp.StatusBadRequest {
				t.Fatalf("status %d body %s", rec.Code, rec.Body)
			}
		})
	}
}

func TestTopAuthors_PassesLimit(t *testing.T) {
	t.Parallel()

	s := &fakeSvc{}
	h, _ := mount(s)
	rec := postReq(h, "/kaizens/top-authors", `{"organization_id":"`+org+`","limit":5}`)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status %d body %s", rec.Code, rec.Body)
	}
	if s.gotLimit != 5 {
		t.Fatalf("limit got %d", s.gotLimit)
	}
	if !strings.Contains(rec.Body.String(), `"items":[]`) {
		t.Fatalf("empty report body %s", rec.Body)
	}
}

func TestServiceErrors_MapToStatus(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		err  error
		want int
	}{
		"missing league": {perr.NotFoundf("league not found"), stdhttp.StatusNotFound},
		"cancelled":      {context.Canceled, stdhttp.StatusServiceUnavailable},
		"db":             {perr.New(perr.ErrorCodeDB, "boom"), stdhttp.StatusInternalServerError},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			h, _ := mount(&fakeSvc{err: tc.err})
			if rec := postReq(h, "/kaizens/counters", `{"organization_id":"`+org+`"}`); rec.Code != tc.want {
				t.Fatalf("status %d want %d", rec.Code, tc.want)
			}
		})
	}
}

package content_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itsolutions/internal/content"
	"itsolutions/internal/domain"
	"itsolutions/internal/latency"
)

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func open(t *testing.T) *content.Stores {
	t.Helper()
	s, err := content.Open(context.Background(), content.NewMemoryBackend(), latency.Instant())
	require.NoError(t, err)
	return s
}

// failingBackend refuses every save.
type failingBackend struct{ *content.MemoryBackend }

func (failingBackend) Save(context.Context, string, any) error { return errors.New("disk full") }

func TestCreateAssignsMaxPlusOne(t *testing.T) {
	ctx := context.Background()
	c, err := content.NewCollection[domain.Service](ctx, content.NewMemoryBackend(), "s", "service", nil, content.Latencies{})
	require.NoError(t, err)

	first, err := c.Create(ctx, domain.Service{Name: "a"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)

	seeded, err := content.NewCollection(ctx, content.NewMemoryBackend(), "s", "service",
		[]domain.Service{{ID: 2}, {ID: 5}}, content.Latencies{})
	require.NoError(t, err)
	next, err := seeded.Create(ctx, domain.Service{Name: "b"})
	require.NoError(t, err)
	assert.Equal(t, 6, next.ID)
	assert.False(t, next.CreatedAt.IsZero())
	assert.Equal(t, next.CreatedAt, next.UpdatedAt)
}

func TestNextID(t *testing.T) {
	assert.Equal(t, 1, content.NextID[domain.Product](nil))
	assert.Equal(t, 6, content.NextID([]domain.Product{{ID: 5}, {ID: 2}}))
}

func TestUpdateKeepsIDAndCreatedAt(t *testing.T) {
	s := open(t)
	ctx := context.Background()
	orig, ok := s.Services.Get(1)
	require.True(t, ok)

	in := orig
	in.ID = 99
	in.CreatedAt = time.Time{}
	in.Name = "Web apps"
	out, err := s.Services.Update(ctx, 1, in)
	require.NoError(t, err)
	assert.Equal(t, 1, out.ID)
	assert.Equal(t, "Web apps", out.Name)
	assert.True(t, orig.CreatedAt.Equal(out.CreatedAt))
	assert.True(t, out.UpdatedAt.After(orig.UpdatedAt))

	_, err = s.Services.Update(ctx, 42, in)
	assert.ErrorIs(t, err, content.ErrNotFound)
	assert.Equal(t, "failed to update service", s.Services.Err())
	assert.Len(t, s.Services.List(), 2)
}

func TestDeleteUnknownIsNoop(t *testing.T) {
	s := open(t)
	ctx := context.Background()
	require.NoError(t, s.Products.Delete(ctx, 42))
	assert.Len(t, s.Products.List(), 2)
	require.NoError(t, s.Products.Delete(ctx, 1))
	ids := []int{}
	for _, p := range s.Products.List() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int{2}, ids)
}

func TestProductCreateDerivesFlags(t *testing.T) {
	s := open(t)
	ctx := context.Background()

	p, err := s.Products.Create(ctx, domain.Product{Name: "Mouse", Price: decimal.RequireFromString("19.99"), StockQuantity: 0})
	require.NoError(t, err)
	assert.Equal(t, 3, p.ID)
	assert.False(t, p.InStock)
	assert.True(t, p.IsActive)

	p, err = s.Products.Create(ctx, domain.Product{Name: "Pad", StockQuantity: 4})
	require.NoError(t, err)
	assert.True(t, p.InStock)
}

func TestFailedSaveLeavesCollectionUntouched(t *testing.T) {
	ctx := context.Background()
	c, err := content.NewCollection(ctx, failingBackend{content.NewMemoryBackend()}, "products", "product",
		content.SeedProducts(), content.Latencies{})
	require.NoError(t, err)
	before := c.List()

	_, err = c.Create(ctx, domain.Product{Name: "x"})
	require.Error(t, err)
	assert.Equal(t, "failed to create product", c.Err())
	_, err = c.Update(ctx, 1, domain.Product{Name: "x"})
	require.Error(t, err)
	require.Error(t, c.Delete(ctx, 1))
	assert.Equal(t, "failed to delete product", c.Err())
	assert.False(t, c.Loading())

	if diff := cmp.Diff(before, c.List(), decimalEqual); diff != "" {
		t.Fatalf("collection changed (-before +after):\n%s", diff)
	}
}

func TestLatencyFailureLeavesCollectionUntouched(t *testing.T) {
	ctx := context.Background()
	c, err := content.NewCollection(ctx, content.NewMemoryBackend(), "services", "service",
		content.SeedServices(), content.Latencies{Save: latency.Fail(nil)})
	require.NoError(t, err)
	_, err = c.Create(ctx, domain.Service{Name: "x"})
	assert.ErrorIs(t, err, latency.ErrInjected)
	assert.Len(t, c.List(), 2)
	assert.NotEmpty(t, c.Err())
}

func TestSuccessClearsError(t *testing.T) {
	s := open(t)
	ctx := context.Background()
	_, err := s.Services.Update(ctx, 42, domain.Service{})
	require.Error(t, err)
	require.NotEmpty(t, s.Services.Err())
	_, err = s.Services.Create(ctx, domain.Service{Name: "Audit"})
	require.NoError(t, err)
	assert.Empty(t, s.Services.Err())
}

func TestListReturnsCopies(t *testing.T) {
	s := open(t)
	list := s.Products.List()
	list[0].Tags[0] = "mutated"
	list[0].Specifications["CPU"] = "mutated"
	p, _ := s.Products.Get(1)
	assert.Equal(t, "apple", p.Tags[0])
	assert.Equal(t, "Apple M1 Pro", p.Specifications["CPU"])
}

func TestWritesDoNotAliasCallerValues(t *testing.T) {
	s := open(t)
	ctx := context.Background()

	specs := map[string]string{"CPU": "i5"}
	tags := []string{"laptop"}
	_, err := s.Products.Update(ctx, 1, domain.Product{Name: "Laptop", Specifications: specs, Tags: tags})
	require.NoError(t, err)
	specs["CPU"] = "mutated"
	tags[0] = "mutated"
	p, _ := s.Products.Get(1)
	assert.Equal(t, "i5", p.Specifications["CPU"])
	assert.Equal(t, "laptop", p.Tags[0])

	features := []string{"RGB"}
	created, err := s.Products.Create(ctx, domain.Product{Name: "Keyboard", Features: features, StockQuantity: 1})
	require.NoError(t, err)
	features[0] = "mutated"
	kb, _ := s.Products.Get(created.ID)
	assert.Equal(t, "RGB", kb.Features[0])
}

func TestCollectionPersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	backend := content.NewMemoryBackend()
	s, err := content.Open(ctx, backend, latency.Instant())
	require.NoError(t, err)
	_, err = s.Services.Create(ctx, domain.Service{Name: "Support", Price: decimal.NewFromInt(100)})
	require.NoError(t, err)

	again, err := content.Open(ctx, backend, latency.Instant())
	require.NoError(t, err)
	got, ok := again.Services.Get(3)
	require.True(t, ok)
	assert.Equal(t, "Support", got.Name)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(100)))
}

func TestHomeSaveStampsAndKeepsID(t *testing.T) {
	s := open(t)
	before := s.Home.Get()
	out, err := s.Home.Save(context.Background(), domain.HomeContent{HeroTitle: "New title"})
	require.NoError(t, err)
	assert.Equal(t, "New title", out.HeroTitle)
	assert.Equal(t, before.ID, out.ID)
	assert.True(t, before.CreatedAt.Equal(out.CreatedAt))
	assert.True(t, out.UpdatedAt.After(before.UpdatedAt))
	assert.Empty(t, s.Home.Err())
}

func TestDocumentFailureKeepsPriorValue(t *testing.T) {
	ctx := context.Background()
	d, err := content.NewDocument(ctx, failingBackend{content.NewMemoryBackend()}, "contact", "contact info",
		content.SeedContact(), nil)
	require.NoError(t, err)
	cs := content.ContactStore{Document: d}

	_, err = cs.Save(ctx, domain.ContactInfo{Phone: "000"})
	require.Error(t, err)
	assert.Equal(t, "failed to save contact info", cs.Err())
	assert.Equal(t, content.SeedContact().Phone, cs.Get().Phone)
	assert.False(t, cs.Loading())
}

func TestContactSaveSetsLastUpdated(t *testing.T) {
	s := open(t)
	out, err := s.Contact.Save(context.Background(), domain.ContactInfo{Phone: "+1 555 0199"})
	require.NoError(t, err)
	assert.Equal(t, "contact", out.ID)
	assert.WithinDuration(t, time.Now(), out.LastUpdated, time.Minute)
}

func TestAboutSubCollections(t *testing.T) {
	s := open(t)
	ctx := context.Background()

	a, err := s.About.AddStat(ctx, domain.CompanyStat{ID: 77, Number: "24/7", Label: "Support"})
	require.NoError(t, err)
	require.Len(t, a.Stats, 4)
	assert.Equal(t, 4, a.Stats[3].ID, "id is max+1, input id ignored")

	a, err = s.About.UpdateStat(ctx, domain.CompanyStat{ID: 4, Number: "24/7", Label: "Always on"})
	require.NoError(t, err)
	assert.Equal(t, "Always on", a.Stats[3].Label)

	_, err = s.About.UpdateStat(ctx, domain.CompanyStat{ID: 99})
	assert.ErrorIs(t, err, content.ErrNotFound)
	assert.Len(t, s.About.Get().Stats, 4)

	a, err = s.About.DeleteStat(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, a.Stats, 3)

	a, err = s.About.AddTeamMember(ctx, domain.TeamMember{Name: "Kim"})
	require.NoError(t, err)
	assert.Equal(t, 3, a.TeamMembers[2].ID)
	a, err = s.About.UpdateTeamMember(ctx, domain.TeamMember{ID: 3, Name: "Kim Park"})
	require.NoError(t, err)
	assert.Equal(t, "Kim Park", a.TeamMembers[2].Name)
	a, err = s.About.DeleteTeamMember(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, a.TeamMembers, 2)

	a, err = s.About.AddAchievement(ctx, domain.Achievement{Year: "2024", Title: "ISO"})
	require.NoError(t, err)
	assert.Equal(t, 3, a.Achievements[2].ID)
	a, err = s.About.UpdateAchievement(ctx, domain.Achievement{ID: 3, Year: "2025", Title: "ISO"})
	require.NoError(t, err)
	assert.Equal(t, "2025", a.Achievements[2].Year)
	a, err = s.About.DeleteAchievement(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, a.Achievements, 2)
}

func TestAboutSaveKeepsLists(t *testing.T) {
	s := open(t)
	out, err := s.About.Save(context.Background(), domain.AboutContent{Title: "Who we are"})
	require.NoError(t, err)
	assert.Equal(t, "Who we are", out.Title)
	assert.Len(t, out.Stats, 3)
	assert.Len(t, out.TeamMembers, 2)
}

func TestProfileFetchAndPatch(t *testing.T) {
	s := open(t)
	ctx := context.Background()
	u := domain.User{ID: 2, Email: "guest@example.com", Name: "Guest", Role: domain.RoleUser}

	p, err := s.Profiles.Fetch(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, "guest@example.com", p.Email)
	assert.Equal(t, "Guest", p.Name)

	phone := "+1 555 0100"
	off := false
	p, err = s.Profiles.Update(ctx, u, content.ProfilePatch{Phone: &phone, Notifications: &off})
	require.NoError(t, err)
	assert.Equal(t, phone, p.Phone)
	assert.False(t, p.Notifications)
	assert.Equal(t, "Guest", p.Name, "unset fields are kept")

	p, err = s.Profiles.Fetch(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, phone, p.Phone)
	assert.Empty(t, s.Profiles.Err())
}

func TestProfileFetchFailure(t *testing.T) {
	s := content.NewProfileStore(content.NewMemoryBackend(), latency.Fail(nil))
	_, err := s.Fetch(context.Background(), domain.User{ID: 1})
	require.Error(t, err)
	assert.Equal(t, "failed to load profile", s.Err())
}

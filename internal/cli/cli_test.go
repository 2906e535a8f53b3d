package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go-quote-desk/internal/auth"
	"go-quote-desk/internal/client"
	"go-quote-desk/internal/config"
	"go-quote-desk/internal/database"
	"go-quote-desk/internal/handlers"
	"go-quote-desk/internal/models"
	"go-quote-desk/internal/quote"
	"go-quote-desk/internal/session"
	"go-quote-desk/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

type env struct {
	cfg      *config.ClientConfig
	cfgPath  string
	sessions *session.Store
	out      string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)
	keyring.MockInit()

	_, err := database.OpenMemory()
	require.NoError(t, err)
	require.NoError(t, auth.Configure("cli-test-secret-0123456", time.Hour))
	require.NoError(t, database.SeedAdmin("admin", "admin-pass"))

	logos, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	handlers.Setup(handlers.Deps{Revoker: auth.NewMemoryRevoker(), Logos: logos})
	r := gin.New()
	handlers.RegisterRoutes(r, false)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	cfg := config.DefaultClientConfig()
	cfg.BaseURL = srv.URL
	cfg.Language = "en"
	cfg.OutputDir = filepath.Join(dir, "out")

	return &env{
		cfg:      cfg,
		cfgPath:  filepath.Join(dir, "config.yaml"),
		sessions: session.NewStore(filepath.Join(dir, "state")),
		out:      cfg.OutputDir,
	}
}

// run executes one quotectl invocation with a fresh App, as a new process would.
func (e *env) run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	a := NewApp(e.cfg, e.cfgPath, e.sessions)
	defer a.Close()
	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), a, args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func (e *env) login(t *testing.T) {
	t.Helper()
	code, out, errOut := e.run(t, "login", "admin", "--password", "admin-pass")
	require.Equal(t, 0, code, errOut)
	require.Contains(t, out, "Signed in as admin")
}

// api returns a client signed in with the stored session.
func (e *env) api(t *testing.T) *client.Client {
	t.Helper()
	sess, err := e.sessions.Load()
	require.NoError(t, err)
	c := client.New(e.cfg.BaseURL, time.Second*5)
	c.SetToken(sess.Token)
	return c
}

const draftYAML = `customer:
  name: ACME
  phone: "0500000000"
project_description: Car shades
location: Riyadh
notes: Valid for 15 days
items:
  - description: Shade
    quantity: "2"
    unit: m
    unit_price: "1500"
  - description: Fixing
    quantity: "1"
    unit_price: "15.02"
`

func (e *env) createQuote(t *testing.T) *models.Quote {
	t.Helper()
	path := filepath.Join(t.TempDir(), "draft.yaml")
	require.NoError(t, os.WriteFile(path, []byte(draftYAML), 0644))

	code, out, errOut := e.run(t, "quotes", "new", "-f", path)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Quote created: QYT26-1")
	assert.Contains(t, out, "3,467.27")

	quotes, err := e.api(t).ListQuotes(context.Background(), 0, 10)
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	return &quotes[0]
}

func TestLogin_SessionSurvivesRestart(t *testing.T) {
	e := newEnv(t)
	e.login(t)

	code, out, errOut := e.run(t, "quotes", "list")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "No quotes found")
}

func TestLogin_WrongPassword(t *testing.T) {
	e := newEnv(t)

	code, _, errOut := e.run(t, "login", "admin", "--password", "nope")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Operation failed: Invalid username or password")
}

func TestQuotes_RequireLogin(t *testing.T) {
	e := newEnv(t)

	code, _, errOut := e.run(t, "quotes", "list")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Operation failed: Please sign in first")
}

func TestLogout_ForgetsSession(t *testing.T) {
	e := newEnv(t)
	e.login(t)

	code, out, _ := e.run(t, "logout")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Signed out")

	_, err := e.sessions.Load()
	assert.ErrorIs(t, err, session.ErrNoSession)
	code, _, _ = e.run(t, "quotes", "list")
	assert.Equal(t, 1, code)
}

func TestQuotesNewAndShow(t *testing.T) {
	e := newEnv(t)
	e.login(t)
	q := e.createQuote(t)

	assert.Equal(t, 3015.02, q.Subtotal)
	assert.Equal(t, 452.25, q.TaxAmount)
	assert.Equal(t, 3467.27, q.TotalAmount)
	require.Len(t, q.Items, 2)
	assert.Equal(t, 3000.0, q.Items[0].TotalPrice)
	assert.Equal(t, quote.DefaultUnit, q.Items[1].Unit)

	code, out, errOut := e.run(t, "quotes", "show", q.ID)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "QYT26-1")
	assert.Contains(t, out, "ACME")
	assert.Contains(t, out, "452.25")

	code, out, _ = e.run(t, "quotes", "list")
	require.Equal(t, 0, code)
	assert.Contains(t, out, q.ID)
	assert.Contains(t, out, "Total: 1 quote(s)")
}

func TestQuotesNew_InvalidDraftNeverSent(t *testing.T) {
	e := newEnv(t)
	e.login(t)

	path := filepath.Join(t.TempDir(), "draft.yaml")
	require.NoError(t, os.WriteFile(path, []byte("customer:\n  name: ACME\nitems:\n  - description: x\n"), 0644))

	code, _, errOut := e.run(t, "quotes", "new", "-f", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Project description is required")

	quotes, err := e.api(t).ListQuotes(context.Background(), 0, 10)
	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestQuotesEdit(t *testing.T) {
	e := newEnv(t)
	e.login(t)
	q := e.createQuote(t)

	code, out, errOut := e.run(t, "quotes", "edit", q.ID,
		"--remove-item", "2",
		"--add-item",
		"--set", "2.description=Delivery",
		"--set", "2.unit_price=100",
		"--customer", "city=Jeddah",
		"--notes", "Updated",
	)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Quote updated: QYT26-1")

	got, err := e.api(t).GetQuote(context.Background(), q.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Shade", got.Items[0].Description)
	assert.Equal(t, "Delivery", got.Items[1].Description)
	assert.Equal(t, 100.0, got.Items[1].TotalPrice)
	assert.Equal(t, 3100.0, got.Subtotal)
	assert.Equal(t, 3565.0, got.TotalAmount)
	assert.Equal(t, "Jeddah", got.Customer.City)
	assert.Equal(t, "Updated", got.Notes)
	assert.Equal(t, "Riyadh", got.Location, "untouched fields are kept")
}

func TestQuotesEdit_RejectedInputChangesNothing(t *testing.T) {
	e := newEnv(t)
	e.login(t)
	q := e.createQuote(t)

	code, _, errOut := e.run(t, "quotes", "edit", q.ID, "--set", "1.description=")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Every item needs a description (#1)")

	code, _, _ = e.run(t, "quotes", "edit", q.ID, "--set", "1.quantity=1e5")
	assert.Equal(t, 1, code)

	got, err := e.api(t).GetQuote(context.Background(), q.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shade", got.Items[0].Description)
	assert.Equal(t, 2.0, got.Items[0].Quantity)
}

func TestQuotesEdit_MissingQuoteShowsList(t *testing.T) {
	e := newEnv(t)
	e.login(t)
	q := e.createQuote(t)

	code, out, errOut := e.run(t, "quotes", "edit", "does-not-exist", "--notes", "x")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Quote not found")
	assert.Equal(t, 1, strings.Count(errOut, "Operation failed"), errOut)
	assert.Contains(t, out, q.ID, "list is printed after a failed fetch")
}

func TestQuotesView(t *testing.T) {
	e := newEnv(t)
	e.login(t)
	q := e.createQuote(t)

	code, out, errOut := e.run(t, "quotes", "view", q.ID)
	require.Equal(t, 0, code, errOut)
	path := filepath.Join(e.out, "ACME_QYT26-1.html")
	assert.Contains(t, out, path)

	html, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(html), "QYT26-1")
	assert.Contains(t, string(html), "3,467.27")
}

func TestQuotesExport_BothStrategies(t *testing.T) {
	e := newEnv(t)
	e.login(t)
	q := e.createQuote(t)

	dir := t.TempDir()
	code, _, errOut := e.run(t, "quotes", "export", q.ID, "--format", "excel", "-o", dir)
	require.Equal(t, 0, code, errOut)
	data, err := os.ReadFile(filepath.Join(dir, "ACME_QYT26-1.xlsx"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")), "xlsx is a zip")

	e.cfg.ExportStrategy = config.ExportLocal
	code, _, errOut = e.run(t, "quotes", "export", q.ID, "--format", "pdf", "-o", dir)
	require.Equal(t, 0, code, errOut)
	data, err = os.ReadFile(filepath.Join(dir, "ACME_QYT26-1.pdf"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	code, _, errOut = e.run(t, "quotes", "export", q.ID, "--format", "docx")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "unsupported format")
}

func TestQuotesDelete(t *testing.T) {
	e := newEnv(t)
	e.login(t)
	q := e.createQuote(t)

	code, out, errOut := e.run(t, "quotes", "delete", q.ID)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Quote deleted")

	code, _, _ = e.run(t, "quotes", "show", q.ID)
	assert.Equal(t, 1, code)
}

func TestCompanyShow(t *testing.T) {
	e := newEnv(t)
	e.login(t)

	code, out, errOut := e.run(t, "company", "show")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, models.DefaultCompany().NameEn)
	assert.Contains(t, out, models.DefaultCompany().TaxNumber)
}

func TestConfigSet(t *testing.T) {
	e := newEnv(t)

	code, _, errOut := e.run(t, "config", "set", "export_strategy", "local")
	require.Equal(t, 0, code, errOut)
	saved, err := config.LoadClient(e.cfgPath)
	require.NoError(t, err)
	assert.Equal(t, config.ExportLocal, saved.ExportStrategy)

	code, _, _ = e.run(t, "config", "set", "export_strategy", "fax")
	assert.Equal(t, 1, code)
	code, _, _ = e.run(t, "config", "set", "timeout_seconds", "soon")
	assert.Equal(t, 1, code)
	code, _, _ = e.run(t, "config", "set", "colour", "blue")
	assert.Equal(t, 1, code)
}

func TestEditsApply(t *testing.T) {
	f := quote.EditForm(&models.Quote{ID: "q", Items: []models.LineItem{
		{Description: "a", Quantity: 1, UnitPrice: 1},
		{Description: "b", Quantity: 1, UnitPrice: 2},
		{Description: "c", Quantity: 1, UnitPrice: 3},
	}})

	project := "New project"
	e := &Edits{Remove: []int{1, 3, 3}, Add: 1, Set: []string{"2.description=d", "2.quantity=2", "2.unit_price=5"}, Project: &project}
	require.NoError(t, e.Apply(f))

	q := f.Quote()
	require.Len(t, q.Items, 2)
	assert.Equal(t, "b", q.Items[0].Description)
	assert.Equal(t, "d", q.Items[1].Description)
	assert.Equal(t, 10.0, q.Items[1].TotalPrice)
	assert.Equal(t, 12.0, q.Subtotal)
	assert.Equal(t, "New project", q.ProjectDescription)
}

func TestEditsApply_Errors(t *testing.T) {
	newForm := func() *quote.Form {
		return quote.EditForm(&models.Quote{ID: "q", Items: []models.LineItem{{Description: "a"}}})
	}

	tests := []struct {
		name  string
		edits Edits
	}{
		{"remove only item", Edits{Remove: []int{1}}},
		{"remove out of range", Edits{Remove: []int{5}}},
		{"set without value", Edits{Set: []string{"1.description"}}},
		{"set without index", Edits{Set: []string{"description=x"}}},
		{"set zero index", Edits{Set: []string{"0.description=x"}}},
		{"set unknown field", Edits{Set: []string{"1.colour=red"}}},
		{"set bad number", Edits{Set: []string{"1.unit_price=abc"}}},
		{"customer without value", Edits{Customer: []string{"name"}}},
		{"unknown customer field", Edits{Customer: []string{"age=3"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.edits.Apply(newForm())
			var usage *usageError
			assert.ErrorAs(t, err, &usage)
		})
	}
}

func TestDraftForm_DefaultsAndDot(t *testing.T) {
	d := &Draft{
		Customer:           map[string]string{"name": "ACME"},
		ProjectDescription: "p",
		Items:              []DraftItem{{Description: "x", UnitPrice: "."}},
	}
	f, err := d.Form()
	require.NoError(t, err)

	q := f.Quote()
	require.Len(t, q.Items, 1)
	assert.Equal(t, 1.0, q.Items[0].Quantity)
	assert.Equal(t, 0.0, q.Items[0].UnitPrice)
	assert.Equal(t, quote.DefaultUnit, q.Items[0].Unit)
	assert.Equal(t, quote.DefaultCountry, q.Customer.Country)
}

func TestFailureMessage(t *testing.T) {
	assert.Equal(t, "Operation failed", failureMessage("en", errors.New("boom")))
	assert.Equal(t, "تعذر تنفيذ العملية", failureMessage("ar", errors.New("boom")))
	assert.Equal(t, "Operation failed: Quote not found",
		failureMessage("en", &client.APIError{Status: 404, Message: "Quote not found"}))
	assert.Equal(t, "Operation failed: Customer name is required",
		failureMessage("en", &quote.ValidationError{Code: quote.CodeCustomerNameRequired, Index: -1}))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdefgh", 5))
	assert.Equal(t, "شركة ...", truncate("شركة المثال", 8))
	assert.True(t, strings.HasPrefix(firstLine("  one\ntwo"), "one"))
}

func TestReadPassword_FromStdin(t *testing.T) {
	cmd := newLoginCmd(&App{})
	cmd.SetIn(strings.NewReader("s3cret\r\nignored\n"))
	cmd.SetErr(&bytes.Buffer{})

	pw, err := readPassword(cmd)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pw)

	cmd.SetIn(strings.NewReader(""))
	_, err = readPassword(cmd)
	var usage *usageError
	assert.ErrorAs(t, err, &usage)
}

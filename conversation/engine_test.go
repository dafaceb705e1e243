package conversation

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tg "github.com/BerikbaiNurai/Lost-Found/core/telegram"
	"github.com/BerikbaiNurai/Lost-Found/core/telegram/state"
	"github.com/BerikbaiNurai/Lost-Found/service"
	"github.com/BerikbaiNurai/Lost-Found/storage"

	tele "gopkg.in/telebot.v4"
)

type sentMessage struct {
	what interface{}
	opts []interface{}
}

// fakeContext records outbound rendering instead of talking to Telegram.
// Only the methods the engine touches are implemented.
type fakeContext struct {
	tele.Context

	user     *tele.User
	text     string
	message  *tele.Message
	callback *tele.Callback

	store     map[string]interface{}
	sent      []sentMessage
	responses []*tele.CallbackResponse
	deleted   bool
	deleteErr error
}

func (f *fakeContext) Sender() *tele.User        { return f.user }
func (f *fakeContext) Text() string              { return f.text }
func (f *fakeContext) Message() *tele.Message    { return f.message }
func (f *fakeContext) Callback() *tele.Callback  { return f.callback }
func (f *fakeContext) Chat() *tele.Chat          { return &tele.Chat{ID: f.user.ID} }
func (f *fakeContext) Update() tele.Update       { return tele.Update{} }
func (f *fakeContext) Get(key string) interface{} { return f.store[key] }

func (f *fakeContext) Set(key string, val interface{}) {
	if f.store == nil {
		f.store = make(map[string]interface{})
	}
	f.store[key] = val
}

func (f *fakeContext) Send(what interface{}, opts ...interface{}) error {
	f.sent = append(f.sent, sentMessage{what: what, opts: opts})
	return nil
}

func (f *fakeContext) Respond(resp ...*tele.CallbackResponse) error {
	if len(resp) == 0 {
		f.responses = append(f.responses, &tele.CallbackResponse{})
		return nil
	}
	f.responses = append(f.responses, resp...)
	return nil
}

func (f *fakeContext) Delete() error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = true
	return nil
}

func (f *fakeContext) sentTexts() []string {
	var out []string
	for _, m := range f.sent {
		if s, ok := m.what.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

type fakeItemRepo struct {
	nextID    int64
	items     map[int64]storage.Item
	insertErr error
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[int64]storage.Item)}
}

func (r *fakeItemRepo) Insert(_ context.Context, ownerID int64, ownerHandle string, kind storage.Kind, description string, photoFileID *string) (int64, error) {
	if r.insertErr != nil {
		return 0, r.insertErr
	}
	r.nextID++
	item := storage.Item{
		ID:          r.nextID,
		OwnerID:     ownerID,
		OwnerHandle: ownerHandle,
		Kind:        kind,
		Description: description,
	}
	if photoFileID != nil {
		item.PhotoFileID.Valid = true
		item.PhotoFileID.String = *photoFileID
	}
	r.items[item.ID] = item
	return item.ID, nil
}

func (r *fakeItemRepo) list(filter func(storage.Item) bool, limit int) []storage.Item {
	var out []storage.Item
	for _, item := range r.items {
		if filter(item) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (r *fakeItemRepo) ListByKind(_ context.Context, kind storage.Kind, limit int) ([]storage.Item, error) {
	return r.list(func(it storage.Item) bool { return it.Kind == kind }, limit), nil
}

func (r *fakeItemRepo) ListByOwner(_ context.Context, ownerID int64, limit int) ([]storage.Item, error) {
	return r.list(func(it storage.Item) bool { return it.OwnerID == ownerID }, limit), nil
}

func (r *fakeItemRepo) DeleteOwned(_ context.Context, id, ownerID int64) (bool, error) {
	item, ok := r.items[id]
	if !ok || item.OwnerID != ownerID {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

type fakeUserRepo struct {
	handles   map[int64]string
	upsertErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{handles: make(map[int64]string)}
}

func (r *fakeUserRepo) UpsertIfAbsent(_ context.Context, userID int64, handle string) (bool, error) {
	if r.upsertErr != nil {
		return false, r.upsertErr
	}
	if _, ok := r.handles[userID]; ok {
		return false, nil
	}
	r.handles[userID] = handle
	return true, nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.handles)), nil
}

type fakeStatsRepo struct {
	clicks map[string]int64
}

func newFakeStatsRepo() *fakeStatsRepo {
	return &fakeStatsRepo{clicks: make(map[string]int64)}
}

func (r *fakeStatsRepo) Increment(_ context.Context, label string) (int64, error) {
	r.clicks[label]++
	return r.clicks[label], nil
}

type harness struct {
	t      *testing.T
	engine *Engine
	fsm    state.Manager
	items  *fakeItemRepo
	users  *fakeUserRepo
	stats  *fakeStatsRepo
}

func newHarness(t *testing.T) *harness {
	items := newFakeItemRepo()
	users := newFakeUserRepo()
	stats := newFakeStatsRepo()
	fsm := state.NewMemoryManager()
	engine := NewEngine(fsm,
		service.NewItemService(items),
		service.NewUserService(users),
		service.NewStatsService(stats),
	)
	return &harness{t: t, engine: engine, fsm: fsm, items: items, users: users, stats: stats}
}

func (h *harness) ctx(user *tele.User, text string) *fakeContext {
	return &fakeContext{user: user, text: text}
}

// sendText dispatches a text update the way the message router would: by the
// user's current FSM state.
func (h *harness) sendText(user *tele.User, text string) *fakeContext {
	c := h.ctx(user, text)
	var err error
	switch h.fsm.GetState(user.ID) {
	case StateMenu:
		err = h.engine.handleMenu(c)
	case StateAwaitingDescription:
		err = h.engine.handleDescription(c)
	case StateAwaitingPhotoDecision:
		err = h.engine.handlePhotoDecision(c)
	case StateAwaitingPhoto:
		err = h.engine.handlePhoto(c)
	default:
		h.t.Fatalf("no active state for user %d", user.ID)
	}
	require.NoError(h.t, err)
	return c
}

func (h *harness) sendPhoto(user *tele.User, fileID string) *fakeContext {
	c := h.ctx(user, "")
	c.message = &tele.Message{Photo: &tele.Photo{File: tele.File{FileID: fileID}}}
	require.Equal(h.t, StateAwaitingPhoto, h.fsm.GetState(user.ID))
	require.NoError(h.t, h.engine.handlePhoto(c))
	return c
}

func (h *harness) start(user *tele.User) *fakeContext {
	c := h.ctx(user, "/start")
	require.NoError(h.t, h.engine.HandleStart(c))
	return c
}

func (h *harness) reportWithoutPhoto(user *tele.User, kindLabel, description string) {
	h.start(user)
	h.sendText(user, kindLabel)
	h.sendText(user, description)
	h.sendText(user, LabelPhotoNo)
}

func deleteCallbackCtx(user *tele.User, itemID int64) *fakeContext {
	return &fakeContext{
		user:     user,
		callback: &tele.Callback{Data: fmt.Sprintf("\f%s|%d", callbackDelete, itemID)},
	}
}

var (
	userA = &tele.User{ID: 101, Username: "alice"}
	userB = &tele.User{ID: 202, Username: "bob"}
)

func TestStartRegistersUserOnce(t *testing.T) {
	h := newHarness(t)

	c := h.start(userA)
	assert.Equal(t, fmt.Sprintf(textWelcomeFmt, 1), c.sentTexts()[0])
	assert.Equal(t, StateMenu, h.fsm.GetState(userA.ID))

	renamed := &tele.User{ID: userA.ID, Username: "alice_new"}
	h.start(renamed)

	require.Len(t, h.users.handles, 1)
	assert.Equal(t, "alice", h.users.handles[userA.ID])
}

func TestStartWithoutUsernameFallsBackToAnon(t *testing.T) {
	h := newHarness(t)
	h.start(&tele.User{ID: 303})
	assert.Equal(t, "anon", h.users.handles[303])
}

func TestReportWithoutPhoto(t *testing.T) {
	h := newHarness(t)
	h.start(userA)

	c := h.sendText(userA, LabelReportFound)
	texts := c.sentTexts()
	require.Len(t, texts, 2)
	assert.Equal(t, templateFound, texts[0])
	assert.Equal(t, textDescriptionPrompt, texts[1])
	assert.Equal(t, StateAwaitingDescription, h.fsm.GetState(userA.ID))

	c = h.sendText(userA, "Lost my badge near library")
	assert.Equal(t, []string{textPhotoQuestion}, c.sentTexts())
	assert.Equal(t, StateAwaitingPhotoDecision, h.fsm.GetState(userA.ID))

	c = h.sendText(userA, LabelPhotoNo)
	texts = c.sentTexts()
	require.Len(t, texts, 2)
	assert.Equal(t, textSavedWithoutPhoto, texts[0])
	assert.Equal(t, fmt.Sprintf(textWelcomeFmt, 1), texts[1])
	assert.Equal(t, StateMenu, h.fsm.GetState(userA.ID))

	require.Len(t, h.items.items, 1)
	item := h.items.items[1]
	assert.Equal(t, storage.KindFound, item.Kind)
	assert.Equal(t, "Lost my badge near library", item.Description)
	assert.Equal(t, userA.ID, item.OwnerID)
	assert.Equal(t, "alice", item.OwnerHandle)
	assert.False(t, item.PhotoFileID.Valid)

	assert.Equal(t, int64(1), h.stats.clicks[string(ActionReportFound)])
}

func TestReportWithPhoto(t *testing.T) {
	h := newHarness(t)
	h.start(userA)
	h.sendText(userA, LabelReportLost)
	h.sendText(userA, "Blue umbrella")

	c := h.sendText(userA, LabelPhotoYes)
	assert.Equal(t, []string{textPhotoPrompt}, c.sentTexts())

	c = h.sendPhoto(userA, "file-abc")
	texts := c.sentTexts()
	require.NotEmpty(t, texts)
	assert.Equal(t, textSavedWithPhoto, texts[0])
	assert.Equal(t, StateMenu, h.fsm.GetState(userA.ID))

	require.Len(t, h.items.items, 1)
	item := h.items.items[1]
	assert.Equal(t, storage.KindLost, item.Kind)
	require.True(t, item.PhotoFileID.Valid)
	assert.Equal(t, "file-abc", item.PhotoFileID.String)
}

func TestPhotoDecisionReprompts(t *testing.T) {
	h := newHarness(t)
	h.start(userA)
	h.sendText(userA, LabelReportFound)
	h.sendText(userA, "Keys on a red lanyard")

	c := h.sendText(userA, "maybe")
	assert.Equal(t, []string{textPhotoYesNo}, c.sentTexts())
	assert.Equal(t, StateAwaitingPhotoDecision, h.fsm.GetState(userA.ID))
	assert.Empty(t, h.items.items)
}

func TestAwaitingPhotoNonPhotoReprompts(t *testing.T) {
	h := newHarness(t)
	h.start(userA)
	h.sendText(userA, LabelReportFound)
	h.sendText(userA, "Student card")
	h.sendText(userA, LabelPhotoYes)

	c := h.sendText(userA, "here you go")
	assert.Equal(t, []string{textPhotoExpected}, c.sentTexts())
	assert.Equal(t, StateAwaitingPhoto, h.fsm.GetState(userA.ID))
	assert.Empty(t, h.items.items)
}

func TestMenuButtonAbandonsReport(t *testing.T) {
	h := newHarness(t)
	h.start(userA)
	h.sendText(userA, LabelReportFound)

	c := h.sendText(userA, LabelBrowseFound)
	assert.Equal(t, []string{textNoFoundItems}, c.sentTexts())
	assert.Equal(t, StateMenu, h.fsm.GetState(userA.ID))
	assert.Empty(t, h.items.items)

	_, pending := h.fsm.GetTempString(userA.ID, tempKind)
	assert.False(t, pending)
}

func TestMenuUnknownTextPrompts(t *testing.T) {
	h := newHarness(t)
	h.start(userA)
	c := h.sendText(userA, "hello there")
	assert.Equal(t, []string{textUseMenu}, c.sentTexts())
	assert.Equal(t, StateMenu, h.fsm.GetState(userA.ID))
}

func TestCancelEndsDialogue(t *testing.T) {
	h := newHarness(t)
	h.start(userA)
	h.sendText(userA, LabelReportFound)

	c := h.ctx(userA, "/cancel")
	require.NoError(t, h.engine.HandleCancel(c))
	assert.Equal(t, []string{textCancelled}, c.sentTexts())
	assert.False(t, h.fsm.InProgress(userA.ID))
}

func TestBrowseOrderingAndLimit(t *testing.T) {
	h := newHarness(t)
	for i := 1; i <= 7; i++ {
		h.reportWithoutPhoto(userA, LabelReportFound, fmt.Sprintf("found item %d", i))
	}

	h.start(userB)
	c := h.sendText(userB, LabelBrowseFound)
	texts := c.sentTexts()
	require.Len(t, texts, browseLimit)
	for i, want := range []string{"found item 7", "found item 6", "found item 5", "found item 4", "found item 3"} {
		assert.Contains(t, texts[i], want)
		assert.Contains(t, texts[i], "@alice")
		assert.Contains(t, texts[i], strings.TrimPrefix(textNoPhotoMark, "\n\n"))
	}
}

func TestBrowseSeparatesKinds(t *testing.T) {
	h := newHarness(t)
	h.reportWithoutPhoto(userA, LabelReportFound, "found thing")
	h.reportWithoutPhoto(userA, LabelReportLost, "lost thing")

	c := h.sendText(userA, LabelBrowseLost)
	texts := c.sentTexts()
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "lost thing")
	assert.NotContains(t, texts[0], "found thing")
}

func TestBrowseRendersPhotoItems(t *testing.T) {
	h := newHarness(t)
	h.start(userA)
	h.sendText(userA, LabelReportFound)
	h.sendText(userA, "Wallet with photo")
	h.sendText(userA, LabelPhotoYes)
	h.sendPhoto(userA, "file-xyz")

	c := h.sendText(userA, LabelBrowseFound)
	require.Len(t, c.sent, 1)
	photo, ok := c.sent[0].what.(*tele.Photo)
	require.True(t, ok)
	assert.Equal(t, "file-xyz", photo.FileID)
	assert.Contains(t, photo.Caption, "Wallet with photo")
}

func TestMyPostsShowsInlineActions(t *testing.T) {
	h := newHarness(t)
	h.reportWithoutPhoto(userA, LabelReportFound, "my own post")

	c := h.sendText(userA, LabelMyPosts)
	require.Len(t, c.sent, 1)
	text, ok := c.sent[0].what.(string)
	require.True(t, ok)
	assert.Contains(t, text, "my own post")

	require.Len(t, c.sent[0].opts, 1)
	sendOpts, ok := c.sent[0].opts[0].(*tele.SendOptions)
	require.True(t, ok)
	require.NotNil(t, sendOpts.ReplyMarkup)
	require.Len(t, sendOpts.ReplyMarkup.InlineKeyboard, 1)
	assert.Len(t, sendOpts.ReplyMarkup.InlineKeyboard[0], 2)
}

func TestMyPostsEmpty(t *testing.T) {
	h := newHarness(t)
	h.start(userA)
	c := h.sendText(userA, LabelMyPosts)
	assert.Equal(t, []string{textNoOwnPosts}, c.sentTexts())
}

func TestDeleteCallbackRemovesOwnItem(t *testing.T) {
	h := newHarness(t)
	h.reportWithoutPhoto(userA, LabelReportFound, "to be deleted")
	require.Len(t, h.items.items, 1)

	c := deleteCallbackCtx(userA, 1)
	require.NoError(t, h.engine.HandleDeleteCallback(c))

	assert.Empty(t, h.items.items)
	assert.True(t, c.deleted)
	require.Len(t, c.responses, 1)
	assert.Equal(t, toastDeleted, c.responses[0].Text)

	h.start(userB)
	browse := h.sendText(userB, LabelBrowseFound)
	assert.Equal(t, []string{textNoFoundItems}, browse.sentTexts())
}

func TestDeleteCallbackDeniedForForeignItem(t *testing.T) {
	h := newHarness(t)
	h.reportWithoutPhoto(userA, LabelReportFound, "alice's post")

	c := deleteCallbackCtx(userB, 1)
	require.NoError(t, h.engine.HandleDeleteCallback(c))

	assert.Len(t, h.items.items, 1)
	assert.False(t, c.deleted)
	require.Len(t, c.responses, 1)
	assert.Equal(t, toastDeleteDenied, c.responses[0].Text)
}

func TestDeleteCallbackNonexistentIsNoop(t *testing.T) {
	h := newHarness(t)
	h.start(userA)

	c := deleteCallbackCtx(userA, 999)
	require.NoError(t, h.engine.HandleDeleteCallback(c))
	require.Len(t, c.responses, 1)
	assert.Equal(t, toastDeleteDenied, c.responses[0].Text)
}

func TestDeleteCallbackMessageDeleteBestEffort(t *testing.T) {
	h := newHarness(t)
	h.reportWithoutPhoto(userA, LabelReportFound, "gone already")

	c := deleteCallbackCtx(userA, 1)
	c.deleteErr = fmt.Errorf("message to delete not found")
	require.NoError(t, h.engine.HandleDeleteCallback(c))

	assert.Empty(t, h.items.items)
	require.Len(t, c.responses, 1)
	assert.Equal(t, toastDeleted, c.responses[0].Text)
}

func TestIgnoreCallbackKeepsPost(t *testing.T) {
	h := newHarness(t)
	h.reportWithoutPhoto(userA, LabelReportFound, "kept post")

	c := &fakeContext{user: userA, callback: &tele.Callback{Data: "\f" + callbackIgnore}}
	require.NoError(t, h.engine.HandleIgnoreCallback(c))

	assert.Len(t, h.items.items, 1)
	require.Len(t, c.responses, 1)
	assert.Equal(t, toastPostKept, c.responses[0].Text)
}

func TestReportInsertFailureAbortsStep(t *testing.T) {
	h := newHarness(t)
	h.start(userA)
	h.sendText(userA, LabelReportFound)
	h.sendText(userA, "Lost badge near library")

	h.items.insertErr = fmt.Errorf("connection refused")
	c := h.ctx(userA, LabelPhotoNo)
	require.Error(t, h.engine.handlePhotoDecision(c))

	assert.Empty(t, c.sent)
	assert.Empty(t, h.items.items)
	assert.Equal(t, StateAwaitingPhotoDecision, h.fsm.GetState(userA.ID))
	desc, ok := h.fsm.GetTempString(userA.ID, tempDescription)
	require.True(t, ok)
	assert.Equal(t, "Lost badge near library", desc)

	// Once the store recovers, the same answer completes the report.
	h.items.insertErr = nil
	c = h.sendText(userA, LabelPhotoNo)
	require.Len(t, h.items.items, 1)
	assert.Equal(t, textSavedWithoutPhoto, c.sentTexts()[0])
	assert.Equal(t, StateMenu, h.fsm.GetState(userA.ID))
}

func TestPhotoInsertFailureAbortsStep(t *testing.T) {
	h := newHarness(t)
	h.start(userA)
	h.sendText(userA, LabelReportLost)
	h.sendText(userA, "Blue umbrella")
	h.sendText(userA, LabelPhotoYes)

	h.items.insertErr = fmt.Errorf("connection refused")
	c := h.ctx(userA, "")
	c.message = &tele.Message{Photo: &tele.Photo{File: tele.File{FileID: "file-abc"}}}
	require.Error(t, h.engine.handlePhoto(c))

	assert.Empty(t, c.sent)
	assert.Empty(t, h.items.items)
	assert.Equal(t, StateAwaitingPhoto, h.fsm.GetState(userA.ID))

	h.items.insertErr = nil
	c = h.sendPhoto(userA, "file-abc")
	require.Len(t, h.items.items, 1)
	assert.Equal(t, textSavedWithPhoto, c.sentTexts()[0])
}

func TestStartRegisterFailureRendersNothing(t *testing.T) {
	h := newHarness(t)

	h.users.upsertErr = fmt.Errorf("connection refused")
	c := h.ctx(userA, "/start")
	require.Error(t, h.engine.HandleStart(c))

	assert.Empty(t, c.sent)
	assert.False(t, h.fsm.InProgress(userA.ID))
}

func TestUserCountCommand(t *testing.T) {
	h := newHarness(t)
	h.start(userA)
	h.start(userB)

	c := h.ctx(userA, "/users")
	require.NoError(t, h.engine.HandleUserCount(c))
	assert.Equal(t, []string{fmt.Sprintf(textUserCountFmt, 2)}, c.sentTexts())
}

func TestCounterAccumulates(t *testing.T) {
	h := newHarness(t)
	h.start(userA)
	for i := 0; i < 3; i++ {
		h.sendText(userA, LabelBrowseFound)
	}
	assert.Equal(t, int64(3), h.stats.clicks[string(ActionBrowseFound)])
	assert.Zero(t, h.stats.clicks[string(ActionBrowseLost)])
}

func TestRegisterBindsCommandsAndCallbacks(t *testing.T) {
	h := newHarness(t)
	reg := tg.NewRegistry()
	require.NoError(t, h.engine.Register(reg))

	for _, name := range []string{"/start", "/cancel", "/users"} {
		_, _, ok := reg.LookupCommand(name)
		assert.True(t, ok, name)
	}
	for _, key := range []string{callbackDelete, callbackIgnore} {
		_, ok := reg.GetCallback(key)
		assert.True(t, ok, key)
	}
}

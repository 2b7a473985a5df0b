package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexListsNewestFirst(t *testing.T) {
	e := newEnv()
	author := e.createUser(t, "leo")
	e.createPost(t, author, nil, "first")
	e.createPost(t, author, nil, "second")

	rec := e.do(t, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON(t, rec)
	assert.Equal(t, []string{"second", "first"}, postTexts(t, resp))
}

func TestProfilePagination(t *testing.T) {
	e := newEnv()
	author := e.createUser(t, "leo")
	for i := 0; i < 13; i++ {
		e.createPost(t, author, nil, fmt.Sprintf("post %d", i))
	}

	rec := e.do(t, http.MethodGet, "/profile/leo/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeJSON(t, rec)
	assert.Len(t, resp["posts"], 10)
	assert.Equal(t, float64(2), resp["totalPages"])
	assert.Equal(t, float64(13), resp["totalItems"])
	assert.Equal(t, true, resp["hasNext"])
	assert.Equal(t, false, resp["hasPrev"])

	rec = e.do(t, http.MethodGet, "/profile/leo/?page=2", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeJSON(t, rec)
	assert.Len(t, resp["posts"], 3)
	assert.Equal(t, false, resp["hasNext"])
	assert.Equal(t, true, resp["hasPrev"])
}

func TestGroupListingScope(t *testing.T) {
	e := newEnv()
	author := e.createUser(t, "leo")
	cats := e.createGroup(t, "cats")
	dogs := e.createGroup(t, "dogs")
	e.createPost(t, author, cats, "about cats")
	e.createPost(t, author, dogs, "about dogs")
	e.createPost(t, author, nil, "no group")

	rec := e.do(t, http.MethodGet, "/group/cats/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON(t, rec)
	assert.Equal(t, []string{"about cats"}, postTexts(t, resp))

	group, ok := resp["group"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "cats", group["slug"])
}

func TestGroupUnknownSlug(t *testing.T) {
	e := newEnv()

	rec := e.do(t, http.MethodGet, "/group/nope/", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProfileScopeAndCount(t *testing.T) {
	e := newEnv()
	leo := e.createUser(t, "leo")
	mia := e.createUser(t, "mia")
	e.createPost(t, leo, nil, "by leo 1")
	e.createPost(t, mia, nil, "by mia")
	e.createPost(t, leo, nil, "by leo 2")

	rec := e.do(t, http.MethodGet, "/profile/leo/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON(t, rec)
	assert.Equal(t, []string{"by leo 2", "by leo 1"}, postTexts(t, resp))
	assert.Equal(t, float64(2), resp["postCount"])
}

func TestProfileUnknownUsername(t *testing.T) {
	e := newEnv()

	rec := e.do(t, http.MethodGet, "/profile/ghost/", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostDetail(t *testing.T) {
	e := newEnv()
	author := e.createUser(t, "leo")
	group := e.createGroup(t, "cats")
	post := e.createPost(t, author, group, "hello")
	e.createPost(t, author, nil, "another")
	e.createComment(t, author, post, "nice one")

	rec := e.do(t, http.MethodGet, "/posts/"+post.ID.Hex()+"/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON(t, rec)
	detail, ok := resp["post"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "hello", detail["text"])
	assert.Equal(t, float64(2), resp["postCount"])

	comments, ok := resp["comments"].([]any)
	require.True(t, ok)
	require.Len(t, comments, 1)
	assert.Equal(t, "nice one", comments[0].(map[string]any)["text"])

	_, hasForm := resp["form"]
	assert.True(t, hasForm)
}

func TestPostDetailNotFound(t *testing.T) {
	e := newEnv()

	rec := e.do(t, http.MethodGet, "/posts/ffffffffffffffffffffffff/", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = e.do(t, http.MethodGet, "/posts/not-an-id/", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostCreate(t *testing.T) {
	e := newEnv()
	author := e.createUser(t, "leo")
	group := e.createGroup(t, "cats")
	token := e.token(t, author)

	body := map[string]string{"text": "brand new", "group": "cats", "image": "posts/small.png"}
	rec := e.do(t, http.MethodPost, "/create/", token, body)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/profile/leo/", rec.Header().Get("Location"))

	posts, err := e.store.PostsByAuthor(context.Background(), author.ID)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "brand new", posts[0].Text)
	assert.Equal(t, "posts/small.png", posts[0].Image)
	require.NotNil(t, posts[0].GroupID)
	assert.Equal(t, group.ID, *posts[0].GroupID)
}

func TestPostCreateBlankText(t *testing.T) {
	e := newEnv()
	author := e.createUser(t, "leo")
	token := e.token(t, author)

	rec := e.do(t, http.MethodPost, "/create/", token, map[string]string{"text": "   "})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeJSON(t, rec)
	assert.Equal(t, "New post", resp["title"])
	errs, ok := resp["errors"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, errs, "text")

	count, err := e.store.CountPostsByAuthor(context.Background(), author.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPostCreateUnknownGroup(t *testing.T) {
	e := newEnv()
	author := e.createUser(t, "leo")
	token := e.token(t, author)

	rec := e.do(t, http.MethodPost, "/create/", token, map[string]string{"text": "ok", "group": "nope"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	errs := decodeJSON(t, rec)["errors"].(map[string]any)
	assert.Contains(t, errs, "group")
}

func TestPostCreateRequiresLogin(t *testing.T) {
	e := newEnv()

	rec := e.do(t, http.MethodPost, "/create/", "", map[string]string{"text": "hi"})

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth/login/?next=%2Fcreate%2F", rec.Header().Get("Location"))
}

func TestCreateAndEditFormTitles(t *testing.T) {
	e := newEnv()
	author := e.createUser(t, "leo")
	post := e.createPost(t, author, nil, "mine")
	token := e.token(t, author)

	rec := e.do(t, http.MethodGet, "/create/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeJSON(t, rec)
	assert.Equal(t, "New post", resp["title"])
	assert.Equal(t, false, resp["isEdit"])

	rec = e.do(t, http.MethodGet, "/posts/"+post.ID.Hex()+"/edit/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeJSON(t, rec)
	assert.Equal(t, "Edit post", resp["title"])
	assert.Equal(t, true, resp["isEdit"])
}

func TestPostEditByOwner(t *testing.T) {
	e := newEnv()
	author := e.createUser(t, "leo")
	post := e.createPost(t, author, nil, "original")
	token := e.token(t, author)

	rec := e.do(t, http.MethodPost, "/posts/"+post.ID.Hex()+"/edit/", token, map[string]string{"text": "updated"})

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/posts/"+post.ID.Hex()+"/", rec.Header().Get("Location"))

	stored, err := e.store.PostByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated", stored.Text)

	count, err := e.store.CountPostsByAuthor(context.Background(), author.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestPostEditBlankText(t *testing.T) {
	e := newEnv()
	author := e.createUser(t, "leo")
	post := e.createPost(t, author, nil, "original")
	token := e.token(t, author)

	rec := e.do(t, http.MethodPost, "/posts/"+post.ID.Hex()+"/edit/", token, map[string]string{"text": ""})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeJSON(t, rec)
	assert.Equal(t, "Edit post", resp["title"])

	stored, err := e.store.PostByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", stored.Text)
}

func TestPostEditByNonOwnerRedirectsSilently(t *testing.T) {
	e := newEnv()
	author := e.createUser(t, "leo")
	intruder := e.createUser(t, "mia")
	post := e.createPost(t, author, nil, "original")
	token := e.token(t, intruder)

	rec := e.do(t, http.MethodPost, "/posts/"+post.ID.Hex()+"/edit/", token, map[string]string{"text": "hacked"})

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/posts/"+post.ID.Hex()+"/", rec.Header().Get("Location"))

	stored, err := e.store.PostByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", stored.Text)
}

func TestPostEditUnknownPostRedirects(t *testing.T) {
	e := newEnv()
	user := e.createUser(t, "leo")
	token := e.token(t, user)

	rec := e.do(t, http.MethodPost, "/posts/ffffffffffffffffffffffff/edit/", token, map[string]string{"text": "x"})

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/posts/ffffffffffffffffffffffff/", rec.Header().Get("Location"))
}

func TestPostEditRequiresLogin(t *testing.T) {
	e := newEnv()
	author := e.createUser(t, "leo")
	post := e.createPost(t, author, nil, "original")
	path := "/posts/" + post.ID.Hex() + "/edit/"

	rec := e.do(t, http.MethodPost, path, "", map[string]string{"text": "x"})

	require.Equal(t, http.StatusFound, rec.Code)
	location := rec.Header().Get("Location")
	assert.Contains(t, location, "/auth/login/?next=")
	assert.Contains(t, location, "edit")
}

func TestUnknownRoute(t *testing.T) {
	e := newEnv()

	rec := e.do(t, http.MethodGet, "/nothing/here/", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

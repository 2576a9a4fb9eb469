package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	tbl := NewTable("posts",
		Column{Name: "title", Type: TypeString},
		Column{Name: "content", Type: TypeText, Nullable: true},
	)

	require.NoError(t, tbl.Validate())
	assert.NotEmpty(t, tbl.ID)
	assert.Equal(t, "posts", tbl.Name)

	require.Len(t, tbl.Columns, 4)
	assert.Equal(t, "id", tbl.Columns[0].Name)
	assert.True(t, tbl.Columns[0].Primary)
	assert.Equal(t, TypeUUID, tbl.Columns[0].Type)
	assert.Equal(t, "created_at", tbl.Columns[3].Name)
	assert.Equal(t, "now", tbl.Columns[3].Default)
}

func TestNewTable_FreshIDs(t *testing.T) {
	a := NewTable("posts")
	b := NewTable("posts")
	assert.NotEqual(t, a.ID, b.ID)
}

func TestTable_PrimaryKey(t *testing.T) {
	tbl := NewTable("posts")
	pk, ok := tbl.PrimaryKey()
	require.True(t, ok)
	assert.Equal(t, "id", pk.Name)

	none := Table{Name: "x", Columns: []Column{{Name: "a", Type: TypeString}}}
	_, ok = none.PrimaryKey()
	assert.False(t, ok)

	two := Table{Name: "x", Columns: []Column{
		{Name: "a", Type: TypeUUID, Primary: true},
		{Name: "b", Type: TypeUUID, Primary: true},
	}}
	_, ok = two.PrimaryKey()
	assert.False(t, ok)
}

func TestTable_Validate(t *testing.T) {
	assert.Error(t, Table{Name: ""}.Validate())

	noPK := Table{Name: "x", Columns: []Column{{Name: "a", Type: TypeString}}}
	assert.Error(t, noPK.Validate())

	wrongName := Table{Name: "x", Columns: []Column{{Name: "key", Type: TypeUUID, Primary: true}}}
	assert.Error(t, wrongName.Validate())
}

func TestUsersTable(t *testing.T) {
	tbl := UsersTable()
	require.NoError(t, tbl.Validate())
	assert.Equal(t, "users", tbl.Name)

	byName := make(map[string]Column)
	for _, c := range tbl.Columns {
		byName[c.Name] = c
	}
	assert.True(t, byName["email"].Unique)
	assert.False(t, byName["email"].Nullable)
	assert.True(t, byName["name"].Nullable)
	assert.Contains(t, byName, "password")

	require.Len(t, tbl.Indexes, 1)
	assert.Equal(t, "users_email_idx", tbl.Indexes[0].Name)
	assert.True(t, tbl.Indexes[0].Unique)
}

func TestNewEndpoint(t *testing.T) {
	e := NewEndpoint(POST, "/posts", "createPost")
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, POST, e.Method)
	assert.Equal(t, "/posts", e.Path)
	assert.Equal(t, "createPost", e.Name)
}

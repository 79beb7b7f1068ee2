package flaskemitter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apiforge/ramlgen/internal/raml"
)

const sampleRAML = `title: Music API
version: v2
/songs:
  get:
  post:
    body:
      application/json:
        example: '{"title": "Blue", "plays": 10, "rating": 4.5, "archived": false}'
  /{songId}:
    get:
    put:
      body:
        application/json:
          example: '{"title": "Blue"}'
    delete:
/health:
  get:
`

func renderSample(t *testing.T) string {
	t.Helper()
	spec, err := raml.Parse(sampleRAML)
	require.NoError(t, err)
	out, err := Render(context.Background(), spec)
	require.NoError(t, err)
	return out
}

func TestRender_ModelFromInferredFields(t *testing.T) {
	t.Parallel()
	out := renderSample(t)

	assert.Contains(t, out, "class Song(db.Model):")
	assert.Contains(t, out, "__tablename__ = 'songs'")
	assert.Contains(t, out, "id = db.Column(db.Integer, primary_key=True)")
	assert.Contains(t, out, "title = db.Column(db.String(255))")
	assert.Contains(t, out, "plays = db.Column(db.Integer)")
	assert.Contains(t, out, "rating = db.Column(db.Float)")
	assert.Contains(t, out, "archived = db.Column(db.Boolean)")
}

func TestRender_RoutesAndHandlers(t *testing.T) {
	t.Parallel()
	out := renderSample(t)

	assert.Contains(t, out, "@app.route('/songs', methods=['GET', 'POST'])")
	assert.Contains(t, out, "def handle_songs():")
	assert.Contains(t, out, "@app.route('/songs/<songId>', methods=['GET', 'PUT', 'DELETE'])")
	assert.Contains(t, out, "def handle_songs_with_id(songId):")
	assert.Contains(t, out, "Song.query.get_or_404(songId)")
	assert.Contains(t, out, "return jsonify({'error': 'Method not allowed'}), 405")
}

func TestRender_AppScaffolding(t *testing.T) {
	t.Parallel()
	out := renderSample(t)

	assert.Contains(t, out, `API_NAME = "Music API"`)
	assert.Contains(t, out, `API_VERSION = "v2"`)
	assert.Contains(t, out, "'sqlite:///music_api.db'")
	assert.Contains(t, out, "with app.app_context():")
	assert.Contains(t, out, "db.create_all()")
}

func TestRender_NoModelsComment(t *testing.T) {
	t.Parallel()
	spec, err := raml.Parse("/ping:\n  get:\n")
	require.NoError(t, err)
	out, err := Render(context.Background(), spec)
	require.NoError(t, err)

	assert.Contains(t, out, "# No models could be generated from the API specification")
	assert.Contains(t, out, "def handle_ping():")
}

func TestRender_NilSpec(t *testing.T) {
	t.Parallel()
	_, err := Render(context.Background(), nil)
	assert.Error(t, err)
}

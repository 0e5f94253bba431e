package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSafeTag(t *testing.T) {
	require.Equal(t, "tag-one", SafeTag("Tag One"))
	require.Equal(t, "tag-one", SafeTag("tag-one"))
	require.Equal(t, "c++", SafeTag("C++"))
	require.Equal(t, "ünïcode-tag", SafeTag("Ünïcode Tag"))
	require.Equal(t, "", SafeTag(""))
}

func TestSlugTag(t *testing.T) {
	require.Equal(t, "tag-one", SlugTag("Tag One"))
	require.Equal(t, "hello-world", SlugTag("Héllo Wörld!"))
}

func TestTemplater_PagePath(t *testing.T) {
	tpl := Templater{
		Path:     "blog/tags/:tag/index.html",
		PathPage: "blog/tags/:tag/:num/index.html",
	}

	require.Equal(t, "blog/tags/tag-one/index.html", tpl.PagePath("Tag One", 1))
	require.Equal(t, "blog/tags/tag-one/2/index.html", tpl.PagePath("Tag One", 2))
	require.Equal(t, "blog/tags/tag-one/3/index.html", tpl.PagePath("Tag One", 3))
}

func TestTemplater_PagePathCustomNormalizer(t *testing.T) {
	tpl := Templater{Path: ":tag.html", PathPage: ":tag-:num.html", Normalize: SlugTag}
	require.Equal(t, "hello-world.html", tpl.PagePath("Héllo Wörld!", 1))
	require.Equal(t, "hello-world-4.html", tpl.PagePath("Héllo Wörld!", 4))
}

func TestTemplater_CollidingTagsShareAPath(t *testing.T) {
	tpl := Templater{Path: "tags/:tag/index.html"}
	require.Equal(t, tpl.PagePath("Tag One", 1), tpl.PagePath("tag-one", 1))
}

func TestExpand_SinglePass(t *testing.T) {
	require.Equal(t, "a:num/7", Expand(":tag/:num", "a:num", 7))
	require.Equal(t, "x/x/1/1", Expand(":tag/:tag/:num/:num", "x", 1))
	require.Equal(t, "static", Expand("static", "x", 1))
}

func TestTemplater_Fields(t *testing.T) {
	tpl := Templater{}
	fields := map[string]any{
		"title":       ":tag - :num",
		"description": "this is the :num page for :tag",
		"weight":      10,
	}

	first := tpl.Fields(fields, "tag one", 1)
	require.Equal(t, "tag one - 1", first["title"])
	require.Equal(t, 10, first["weight"])

	second := tpl.Fields(fields, "tag one", 2)
	require.Equal(t, "this is the 2 page for tag one", second["description"])

	require.Equal(t, ":tag - :num", fields["title"], "input map must not change")
	require.Nil(t, tpl.Fields(nil, "x", 1))
}

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlocks_FindsMarkedArticles(t *testing.T) {
	doc := `<html><body>
<article class="blog-post hentry">one</article>
<article class="sidebar-widget">skip</article>
<ARTICLE data-id="3" class='blog-post'>three</ARTICLE>
<article id="x" class="hentry blog-post index-post">four</article >
</body></html>`

	got := Blocks(doc, "blog-post")
	assert.Equal(t, []string{"one", "three", "four"}, got)
}

func TestBlocks_ClassTokenMustMatchExactly(t *testing.T) {
	doc := `<article class="blog-posted">a</article><article class="blog-post-wrap">b</article>`
	assert.Empty(t, Blocks(doc, "blog-post"))
}

func TestBlocks_NonOverlapping(t *testing.T) {
	doc := `<article class="blog-post">a</article>middle<article class="blog-post">b</article>`
	got := Blocks(doc, "blog-post")
	require.Len(t, got, 2)
	assert.NotContains(t, got[0], "middle")
	assert.NotContains(t, got[1], "middle")
}

func TestBlocks_UnclosedArticleStopsScan(t *testing.T) {
	doc := `<article class="blog-post">a</article><article class="blog-post">dangling`
	assert.Equal(t, []string{"a"}, Blocks(doc, "blog-post"))
}

func TestBlocks_NoBlocks(t *testing.T) {
	assert.Empty(t, Blocks("<html><body><p>Nothing here</p></body></html>", "blog-post"))
	assert.Empty(t, Blocks("", "blog-post"))
}

func TestParseBlock(t *testing.T) {
	tests := []struct {
		name  string
		block string
		want  Item
		ok    bool
	}{
		{
			name: "typical post",
			block: `<div class="post-image-wrap"><img alt="x" src="images/film.png"/></div>
<h2 class="post-title"><a href="https://legacy.example.com/film" target="_blank">X-Ray Film</a></h2>`,
			want: Item{Title: "X-Ray Film", Link: "https://legacy.example.com/film", Image: "images/film.png"},
			ok:   true,
		},
		{
			name:  "attribute order and quoting vary",
			block: `<h3 id='t' class='entry post-title'><a target=_blank title="t" href='https://legacy.example.com/a'>Apron</a></h3><img class=thumb src=img/a.jpg>`,
			want:  Item{Title: "Apron", Link: "https://legacy.example.com/a", Image: "img/a.jpg"},
			ok:    true,
		},
		{
			name:  "nested tags stripped and entities decoded",
			block: `<h2 class="post-title"><a href="/p">  Gel <b>250ml</b>
 &amp; Pads </a></h2>`,
			want: Item{Title: "Gel 250ml & Pads", Link: "/p"},
			ok:   true,
		},
		{
			name:  "first image with a src wins",
			block: `<img alt="spacer"><img src="a.png"><img src="b.png"><h2 class="post-title"><a href="/x">X</a></h2>`,
			want:  Item{Title: "X", Link: "/x", Image: "a.png"},
			ok:    true,
		},
		{
			name:  "anchor outside the title heading is ignored",
			block: `<a href="/other">Other</a><h2 class="post-title">No link</h2>`,
			ok:    false,
		},
		{
			name:  "no title heading",
			block: `<img src="a.png"><h2><a href="/x">X</a></h2>`,
			want:  Item{Image: "a.png"},
			ok:    false,
		},
		{
			name:  "empty anchor text",
			block: `<h2 class="post-title"><a href="/x"><img src="i.png"></a></h2>`,
			want:  Item{Link: "/x", Image: "i.png"},
			ok:    false,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseBlock(tc.block)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestNewsItems_Defaults(t *testing.T) {
	doc := `
<article class="blog-post hentry halaman-indeks"><img src="https://cdn.example.com/n1.jpg"><h2 class="post-title"><a href="https://legacy.example.com/n1">Open Day</a></h2></article>
<article class="blog-post hentry halaman-indeks"><h2 class="post-title">Untitled</h2></article>
<article class="blog-post hentry">not news</article>`

	got := NewsItems(doc, "halaman-indeks")
	require.Len(t, got, 2)
	assert.Equal(t, NewsItem{Title: "Open Day", Image: "https://cdn.example.com/n1.jpg", Link: "https://legacy.example.com/n1"}, got[0])
	assert.Equal(t, NewsItem{Title: "No Title", Link: "#"}, got[1])
}

package markup

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// gallerySelector matches classic shortcode galleries and block editor galleries.
const gallerySelector = ".gallery, .wp-block-gallery"

// galleryItemSelector matches one image slot inside a gallery, across the
// shortcode, legacy block and nested-image block layouts.
const galleryItemSelector = ".gallery-item, .blocks-gallery-item, figure.wp-block-image"

// RewriteGalleries converts every gallery in t to canonical markup and
// returns the galleries it found. Each container loses its id and gets the
// gallery class. Each item holding an image is replaced by a gallery item
// div wrapping the adapted image; items without an image are left alone.
func RewriteGalleries(t *Tree) *goquery.Selection {
	galleries := t.Root().Find(gallerySelector)

	galleries.Each(func(_ int, gallery *goquery.Selection) {
		gallery.RemoveAttr("id")
		gallery.SetAttr("class", GalleryClass)

		gallery.Find(galleryItemSelector).Each(func(_ int, item *goquery.Selection) {
			img := item.Find("img").First()
			if img.Length() == 0 {
				return
			}
			item.ReplaceWithHtml(fmt.Sprintf(
				`<div class="%s">%s</div>`,
				GalleryItemClass,
				AdaptImage(img, GalleryImageClass),
			))
		})
	})

	return galleries
}

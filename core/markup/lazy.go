package markup

import "github.com/PuerkitoBio/goquery"

// NormalizeLazyImages replaces every lazily loaded image that is not yet in
// canonical form with the adapted post image tag. It returns the number of
// images replaced.
func NormalizeLazyImages(t *Tree) int {
	images := t.Root().
		Find("img[loading]").
		Not("." + ImageClass + ", ." + GalleryImageClass)

	images.Each(func(_ int, img *goquery.Selection) {
		img.ReplaceWithHtml(AdaptImage(img, ImageClass))
	})

	return images.Length()
}

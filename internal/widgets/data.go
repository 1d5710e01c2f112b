package widgets

import "fmt"

// ImageRef names one of the bundled pictures.
type ImageRef int

const (
	LauncherForeground ImageRef = iota
	LauncherBackground
	GoogleLogo
)

// Category is one row of the list demos.
type Category struct {
	Image    ImageRef
	Title    string
	Subtitle string
}

// CategoryCount is the size of the list demo dataset.
const CategoryCount = 100

// CategoryList returns the list demo dataset. Even positions use the
// launcher foreground, odd ones the launcher background.
func CategoryList() []Category {
	return CategoryListN(CategoryCount)
}

// CategoryListN is CategoryList with n items.
func CategoryListN(n int) []Category {
	list := make([]Category, 0, n)
	for i := 1; i <= n; i++ {
		img := LauncherBackground
		if i%2 == 0 {
			img = LauncherForeground
		}
		list = append(list, Category{
			Image:    img,
			Title:    fmt.Sprintf("Alok %d", i),
			Subtitle: fmt.Sprintf("Mirzapur %d", i),
		})
	}
	return list
}

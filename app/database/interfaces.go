package database

type TitleRepository interface {
	GetTitle(key string) (string, bool, error)
	GetTitleCount() (int, error)

	PutTitle(key, title string) error
}

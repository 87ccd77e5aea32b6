package filestore

import (
	"path/filepath"

	"StockPredict/internal/model"
)

// DiscoverExchanges lists root and every directory below it as an exchange,
// keeping only those that directly contain at least one CSV file.
func DiscoverExchanges(fsys FileSystem, root string) ([]model.ExchangeDirectory, error) {
	dirs, err := fsys.ListDirectories(root)
	if err != nil {
		return nil, err
	}

	var exchanges []model.ExchangeDirectory
	for _, dir := range dirs {
		names, err := fsys.ListCSVFiles(dir)
		if err != nil {
			return nil, err
		}
		if len(names) == 0 {
			continue
		}
		exchanges = append(exchanges, model.ExchangeDirectory{
			Name:      exchangeName(root, dir),
			Dir:       dir,
			FileNames: names,
		})
	}
	return exchanges, nil
}

func exchangeName(root, dir string) string {
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." {
		return ""
	}
	return rel
}

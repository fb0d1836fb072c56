package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	artistModel "xpose-backend/internal/domains/artist/model"
	"xpose-backend/internal/domains/asset/model"
	serieModel "xpose-backend/internal/domains/serie/model"
)

const exportSheet = "Assets"

var exportHeaders = []string{
	"ID",
	"Name",
	"Description",
	"Type",
	"Comment",
	"URL",
	"Thumbnail URL",
	"Active",
	"Authors",
	"Series",
}

func (s *assetService) Export(ctx context.Context, f model.Filter) (*excelize.File, error) {
	assets, err := s.repo.Filter(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	file, err := buildAssetsExcelFile(assets)
	if err != nil {
		return nil, fmt.Errorf("failed to build excel file: %w", err)
	}
	return file, nil
}

func buildAssetsExcelFile(assets []model.Asset) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	for colIdx, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		f.SetCellValue(exportSheet, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
	})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
		f.SetCellStyle(exportSheet, "A1", last, headerStyle)
	}

	for i, a := range assets {
		thumbnail := ""
		if a.ThumbnailURL != nil {
			thumbnail = *a.ThumbnailURL
		}

		row := []interface{}{
			a.ID,
			a.Name,
			a.Description,
			a.Type,
			a.Comment,
			a.URL,
			thumbnail,
			a.Active,
			authorNames(a.Authors),
			serieNames(a.Series),
		}

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// authorNames lists artists by artistic name, falling back to name and surname.
func authorNames(artists []artistModel.Artist) string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		name := a.ArtisticName
		if name == "" {
			name = strings.TrimSpace(a.Name + " " + a.Surname)
		}
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}

func serieNames(series []serieModel.Serie) string {
	names := make([]string, 0, len(series))
	for _, s := range series {
		names = append(names, s.Name)
	}
	return strings.Join(names, ", ")
}

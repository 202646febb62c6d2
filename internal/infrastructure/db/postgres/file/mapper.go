package file

import (
	domain "attachments-api/internal/domain/file"
)

func fromDBModel(model *File) *domain.File {
	var f = &domain.File{
		ID:   model.ID,
		UUID: model.UUID,

		Model:     model.Model,
		TargetID:  model.TargetID,
		TargetURL: model.TargetURL,

		Content:      model.Content,
		FileNameUser: model.FileNameUser,
		FileNamePath: model.FileNamePath,
		MimeType:     model.MimeType,

		CreatedBy: model.CreatedBy,
		Public:    model.Public,
		Tags:      model.Tags,
		Status:    domain.Status(model.Status),
		Position:  model.Position,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}

	return f
}

func fromDBModels(models *Files) domain.Files {
	fs := make(domain.Files, len(*models))
	for idx, f := range *models {
		fs[idx] = fromDBModel(f)
	}

	return fs
}

package file

import (
	"attachments-api/internal/domain/file"
)

func ToResponseFile(fDomain file.File) File {
	var f = File{
		UUID:        fDomain.UUID,
		Model:       fDomain.Model,
		TargetID:    fDomain.TargetID,
		TargetURL:   fDomain.TargetURL,
		FileName:    fDomain.FileNameUser,
		FilePath:    fDomain.FileNamePath,
		MimeType:    fDomain.MimeType,
		SizeBytes:   len(fDomain.Content),
		CreatedBy:   fDomain.CreatedBy,
		Public:      fDomain.Public,
		Tags:        fDomain.Tags,
		Status:      fDomain.Status.String(),
		Position:    fDomain.Position,
		DownloadURL: fDomain.DownloadURL,
		CreatedAt:   fDomain.CreatedAt,
	}

	return f
}

func ToResponseFiles(fsDomain file.Files) Files {
	fs := make(Files, len(fsDomain))
	for idx, f := range fsDomain {
		fs[idx] = ToResponseFile(*f)
	}

	return fs
}

func ToOptions(r AttachRequest) file.Options {
	return file.Options{
		Content:   r.Content,
		Name:      r.Name,
		Path:      r.Path,
		Type:      r.Type,
		TargetURL: r.TargetURL,
		Tags:      r.Tags,
	}
}

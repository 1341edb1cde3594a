package utils

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/joho/godotenv"
)

// InitCloudinary initializes the Cloudinary client
func InitCloudinary() (*cloudinary.Cloudinary, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}

	cld, err := cloudinary.NewFromParams(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"))
	if err != nil {
		return nil, err
	}
	return cld, nil
}

// uploadTransformation picks the Cloudinary transformation for a file
// extension. Images are bounded to a sane size; PDFs must pass through
// untouched.
func uploadTransformation(ext string) string {
	if strings.EqualFold(ext, ".pdf") {
		return ""
	}
	return "c_limit,w_1600,h_1600"
}

// UploadToCloudinary uploads a file to Cloudinary and returns the secure
// URL. ext is the original filename's extension and decides whether an
// image transformation applies.
func UploadToCloudinary(file interface{}, publicID, folder, ext string) (string, error) {
	cld, err := InitCloudinary()
	if err != nil {
		return "", err
	}

	ctx := context.Background()
	uploadParams := uploader.UploadParams{
		PublicID:       publicID,
		Folder:         folder,
		UploadPreset:   os.Getenv("CLOUDINARY_UPLOAD_PRESET"),
		Transformation: uploadTransformation(ext),
	}

	resp, err := cld.Upload.Upload(ctx, file, uploadParams)
	if err != nil {
		return "", err
	}
	return resp.SecureURL, nil
}

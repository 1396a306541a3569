package cloudinary

import (
	"github.com/cloudinary/cloudinary-go/v2"
)

// New reads CLOUDINARY_URL from the environment when url is empty.
func New(url string) (*cloudinary.Cloudinary, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if url == "" {
		cld, err = cloudinary.New()
	} else {
		cld, err = cloudinary.NewFromURL(url)
	}
	if err != nil {
		return nil, err
	}
	cld.Config.URL.Secure = true
	cld.Config.URL.SignURL = true
	return cld, nil
}

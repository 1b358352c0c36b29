package apierror_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nepdora/go-storefront-auth/apierror"
)

func TestValidateUpload(t *testing.T) {
	t.Run("accepts an image under the cap", func(t *testing.T) {
		require.NoError(t, apierror.ValidateUpload(1024, "image/png"))
	})

	t.Run("rejects oversized files", func(t *testing.T) {
		err := apierror.ValidateUpload(apierror.MaxUploadSize+1, "image/png")
		require.Error(t, err)
		require.Equal(t, "File size must not exceed 5MB", err.Error())
	})

	t.Run("rejects disallowed content types", func(t *testing.T) {
		err := apierror.ValidateUpload(1024, "application/pdf")
		require.Error(t, err)
		require.Equal(t, "Invalid file type. Please upload a JPEG, PNG, or WebP image", err.Error())
	})
}

func TestValidateURL(t *testing.T) {
	require.True(t, apierror.ValidateURL(""))
	require.True(t, apierror.ValidateURL("https://example.com/profile"))
	require.True(t, apierror.ValidateURL("http://example.com"))
	require.False(t, apierror.ValidateURL("ftp://example.com"))
	require.False(t, apierror.ValidateURL("not a url"))
	require.False(t, apierror.ValidateURL("https://"))
}

func TestValidateSocialLinks(t *testing.T) {
	t.Run("all valid yields no errors", func(t *testing.T) {
		errs := apierror.ValidateSocialLinks(apierror.SocialLinks{
			Facebook: "https://facebook.com/acme",
		})
		require.Nil(t, errs)
	})

	t.Run("invalid links are reported per field", func(t *testing.T) {
		errs := apierror.ValidateSocialLinks(apierror.SocialLinks{
			Facebook: "facebook.com/acme",
			Twitter:  "https://twitter.com/acme",
		})
		require.Equal(t, apierror.FieldErrors{"facebook": {"Enter a valid URL"}}, errs)
	})
}

package shows

import (
	"github.com/pkg/errors"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/ivlev/algo2video/internal/scene"
)

// Outro clears the scene and shows a closing card with a QR code pointing
// at url. Skipped entirely when url is empty.
func Outro(s *scene.Scene, url, message string) error {
	if url == "" {
		return nil
	}

	code, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return errors.Wrap(err, "build qr code")
	}
	code.BackgroundColor = colorBackground
	code.ForegroundColor = colorText

	s.Clear()

	qr := scene.NewSprite(scene.Pt(s.Center().X, s.Center().Y-40), code.Image(280))
	label := scene.NewLabel(
		scene.Pt(s.Center().X, s.Center().Y+160), message, 2, colorMuted)

	if err := s.Play(1.0, scene.FadeIn(qr, label)); err != nil {
		return err
	}

	return s.Wait(2.0)
}

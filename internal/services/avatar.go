package services

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"image"
	"image/color"
	"math/rand"
	"os"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"

	"github.com/yungbote/carelog-backend/internal/logger"
	"github.com/yungbote/carelog-backend/internal/types"
)

// AvatarService renders patient avatars. Generated avatars are stored inline
// on the patient row as a PNG data URL so the frontend needs no extra fetch.
type AvatarService interface {
	EnsurePatientAvatar(patient *types.Patient) error
	SetPatientAvatarFromImage(patient *types.Patient, raw []byte) error
}

type avatarService struct {
	log      *logger.Logger
	bgColors []color.NRGBA
	fontFace font.Face
}

var defaultAvatarColors = []color.NRGBA{
	{R: 0x4C, G: 0x6E, B: 0xF5, A: 0xFF},
	{R: 0x0E, G: 0xA5, B: 0xE9, A: 0xFF},
	{R: 0x10, G: 0xB9, B: 0x81, A: 0xFF},
	{R: 0xF5, G: 0x9E, B: 0x0B, A: 0xFF},
	{R: 0xEF, G: 0x44, B: 0x44, A: 0xFF},
	{R: 0x8B, G: 0x5C, B: 0xF6, A: 0xFF},
	{R: 0xEC, G: 0x48, B: 0x99, A: 0xFF},
}

// NewAvatarService loads the initials font from AVATAR_FONT when set. Without
// a font the avatar is still generated, just without initials drawn on it.
func NewAvatarService(log *logger.Logger) AvatarService {
	serviceLog := log.With("service", "AvatarService")

	var face font.Face
	if fontPath := strings.TrimSpace(os.Getenv("AVATAR_FONT")); fontPath != "" {
		loaded, err := loadFontFace(fontPath, 206)
		if err != nil {
			serviceLog.Warn("Could not load avatar font, avatars will have no initials", "font", fontPath, "error", err)
		} else {
			face = loaded
		}
	}

	return &avatarService{
		log:      serviceLog,
		bgColors: defaultAvatarColors,
		fontFace: face,
	}
}

func (as *avatarService) EnsurePatientAvatar(patient *types.Patient) error {
	as.ensureAvatarColor(patient)

	buf, err := as.generateAvatar(patient)
	if err != nil {
		return err
	}
	patient.AvatarDataURL = "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
	return nil
}

func (as *avatarService) generateAvatar(patient *types.Patient) (bytes.Buffer, error) {
	const size = 512

	dc := gg.NewContext(size, size)
	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()

	base := as.pickColor(patient.AvatarColor)
	dc.SetColor(base)
	dc.DrawRectangle(0, 0, float64(size), float64(size))
	dc.Fill()

	if as.fontFace != nil {
		initials := computeInitials(patient.FirstName, patient.LastName)
		dc.SetFontFace(as.fontFace)
		tw, th := dc.MeasureString(initials)
		cx, cy := float64(size)/2, float64(size)/2
		dc.SetColor(color.White)
		dc.DrawString(initials, cx-(tw/2), cy+(th/2)-10)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return buf, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf, nil
}

// SetPatientAvatarFromImage center-crops an uploaded photo to a circle and
// stores it in place of the generated initials avatar.
func (as *avatarService) SetPatientAvatarFromImage(patient *types.Patient, raw []byte) error {
	const size = 512

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	b := img.Bounds()
	w := b.Dx()
	h := b.Dy()
	side := w
	if h < w {
		side = h
	}
	x0 := b.Min.X + (w-side)/2
	y0 := b.Min.Y + (h-side)/2

	cropRect := image.Rect(0, 0, side, side)
	cropped := image.NewRGBA(cropRect)
	draw.Draw(cropped, cropRect, img, image.Point{X: x0, Y: y0}, draw.Src)

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), cropped, cropped.Bounds(), draw.Over, nil)

	dc := gg.NewContext(size, size)
	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()
	dc.DrawImage(dst, 0, 0)

	var out bytes.Buffer
	if err := dc.EncodePNG(&out); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	patient.AvatarDataURL = "data:image/png;base64," + base64.StdEncoding.EncodeToString(out.Bytes())
	return nil
}

func (as *avatarService) ensureAvatarColor(patient *types.Patient) {
	if n := normalizeHex(patient.AvatarColor); n != "" {
		patient.AvatarColor = n
		return
	}
	pick := as.bgColors[rand.Intn(len(as.bgColors))]
	patient.AvatarColor = nrgbaToHex(pick)
}

func (as *avatarService) pickColor(hexStr string) color.NRGBA {
	if h := normalizeHex(hexStr); h != "" {
		if r, g, b, err := parseHexRGB(h); err == nil {
			return color.NRGBA{R: r, G: g, B: b, A: 0xFF}
		}
	}
	return as.bgColors[rand.Intn(len(as.bgColors))]
}

func normalizeHex(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	s = strings.ToUpper(s)
	if len(s) != 7 {
		return ""
	}
	if _, _, _, err := parseHexRGB(s); err != nil {
		return ""
	}
	return s
}

func parseHexRGB(s string) (r, g, b uint8, err error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0, 0, 0, fmt.Errorf("expected 6 hex chars")
	}
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid hex")
	}
	return raw[0], raw[1], raw[2], nil
}

func nrgbaToHex(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func computeInitials(first, last string) string {
	fInit := "?"
	if r := []rune(strings.TrimSpace(first)); len(r) > 0 {
		fInit = strings.ToUpper(string(r[0]))
	}
	lInit := ""
	if r := []rune(strings.TrimSpace(last)); len(r) > 0 {
		lInit = strings.ToUpper(string(r[0]))
	}
	return fInit + lInit
}

func loadFontFace(fontPath string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	return truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}

package whatsapp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/sunshineplan/imgconv"
	"google.golang.org/protobuf/proto"

	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"

	"github.com/gdbrns/go-whatsapp-web-relay-api/pkg/log"
	"github.com/gdbrns/go-whatsapp-web-relay-api/pkg/validation"
)

// Media is a remote file loaded into memory, ready to be uploaded.
type Media struct {
	MimeType string
	FileName string
	Data     []byte
}

// SendMessage sends a plain text message.
func (c *Client) SendMessage(ctx context.Context, to string, body string) error {
	if err := c.ready(); err != nil {
		return err
	}
	recipient, err := c.resolveRecipient(ctx, to)
	if err != nil {
		return err
	}
	_, err = c.send(ctx, recipient, &waE2E.Message{Conversation: proto.String(body)})
	return err
}

// MediaFromURL downloads mediaURL and detects its MIME type.
func (c *Client) MediaFromURL(ctx context.Context, mediaURL string) (*Media, error) {
	if err := validation.ValidateURL(mediaURL); err != nil {
		return nil, err
	}

	resp, err := c.media.R().SetContext(ctx).Get(mediaURL)
	if err != nil {
		return nil, fmt.Errorf("fetch media: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("fetch media: HTTP %d", resp.StatusCode())
	}

	data := resp.Body()
	if len(data) == 0 {
		return nil, errors.New("fetch media: empty body")
	}
	if c.cfg.MediaMaxSize > 0 && len(data) > c.cfg.MediaMaxSize {
		return nil, fmt.Errorf("fetch media: %d bytes exceeds limit of %d", len(data), c.cfg.MediaMaxSize)
	}

	return &Media{
		MimeType: detectMimeType(resp.Header().Get("Content-Type"), data),
		FileName: fileNameFromURL(mediaURL),
		Data:     data,
	}, nil
}

// SendMedia uploads media and sends it with an optional caption.
func (c *Client) SendMedia(ctx context.Context, to string, media *Media, caption string) error {
	if media == nil {
		return errors.New("media is required")
	}
	if err := c.ready(); err != nil {
		return err
	}
	recipient, err := c.resolveRecipient(ctx, to)
	if err != nil {
		return err
	}

	uploadType := mediaTypeFor(media.MimeType)
	uploaded, err := c.wa.Upload(ctx, media.Data, uploadType)
	if err != nil {
		return fmt.Errorf("Error While Uploading Media to WhatsApp Server: %w", err)
	}

	var thumbnail []byte
	if uploadType == whatsmeow.MediaImage {
		thumbnail, err = imageThumbnail(media.Data)
		if err != nil {
			log.SessionOp("media").WithError(err).Debug("Thumbnail skipped")
		}
	}

	_, err = c.send(ctx, recipient, buildMediaMessage(uploadType, uploaded, media, caption, thumbnail))
	return err
}

func (c *Client) send(ctx context.Context, to types.JID, msg *waE2E.Message) (types.MessageID, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	extra := whatsmeow.SendRequestExtra{ID: c.wa.GenerateMessageID()}
	if _, err := c.wa.SendMessage(ctx, to, msg, extra); err != nil {
		return "", err
	}

	sender := to
	if c.wa.Store.ID != nil {
		sender = c.wa.Store.ID.ToNonAD()
	}
	c.rememberKey(messageKey{ID: extra.ID, Chat: to, Sender: sender, FromMe: true})
	return extra.ID, nil
}

// resolveRecipient composes the JID and, for phone numbers, checks the number is on WhatsApp.
func (c *Client) resolveRecipient(ctx context.Context, to string) (types.JID, error) {
	jid, err := ComposeJID(to)
	if err != nil {
		return types.EmptyJID, err
	}
	if jid.Server != types.DefaultUserServer {
		return jid, nil
	}

	infos, err := c.wa.IsOnWhatsApp(ctx, []string{"+" + jid.User})
	if err != nil {
		return types.EmptyJID, err
	}
	if len(infos) == 0 || !infos[0].IsIn {
		return types.EmptyJID, errors.New("WhatsApp Personal ID is Not Registered")
	}
	return infos[0].JID, nil
}

func detectMimeType(header string, data []byte) string {
	if header != "" {
		if mediaType, _, err := mime.ParseMediaType(header); err == nil && mediaType != "application/octet-stream" {
			return mediaType
		}
	}
	mediaType, _, _ := mime.ParseMediaType(http.DetectContentType(data))
	return mediaType
}

func fileNameFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "file"
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "file"
	}
	return name
}

func mediaTypeFor(mimeType string) whatsmeow.MediaType {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return whatsmeow.MediaImage
	case strings.HasPrefix(mimeType, "video/"):
		return whatsmeow.MediaVideo
	case strings.HasPrefix(mimeType, "audio/"):
		return whatsmeow.MediaAudio
	}
	return whatsmeow.MediaDocument
}

func imageThumbnail(data []byte) ([]byte, error) {
	img, err := imgconv.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	err = imgconv.Write(buf,
		imgconv.Resize(img, &imgconv.ResizeOption{Width: 72}),
		&imgconv.FormatOption{Format: imgconv.JPEG})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildMediaMessage(mediaType whatsmeow.MediaType, up whatsmeow.UploadResponse, media *Media, caption string, thumbnail []byte) *waE2E.Message {
	switch mediaType {
	case whatsmeow.MediaImage:
		return &waE2E.Message{ImageMessage: &waE2E.ImageMessage{
			URL:           proto.String(up.URL),
			DirectPath:    proto.String(up.DirectPath),
			Mimetype:      proto.String(media.MimeType),
			Caption:       proto.String(caption),
			FileLength:    proto.Uint64(up.FileLength),
			FileSHA256:    up.FileSHA256,
			FileEncSHA256: up.FileEncSHA256,
			MediaKey:      up.MediaKey,
			JPEGThumbnail: thumbnail,
		}}
	case whatsmeow.MediaVideo:
		return &waE2E.Message{VideoMessage: &waE2E.VideoMessage{
			URL:           proto.String(up.URL),
			DirectPath:    proto.String(up.DirectPath),
			Mimetype:      proto.String(media.MimeType),
			Caption:       proto.String(caption),
			FileLength:    proto.Uint64(up.FileLength),
			FileSHA256:    up.FileSHA256,
			FileEncSHA256: up.FileEncSHA256,
			MediaKey:      up.MediaKey,
		}}
	case whatsmeow.MediaAudio:
		return &waE2E.Message{AudioMessage: &waE2E.AudioMessage{
			URL:           proto.String(up.URL),
			DirectPath:    proto.String(up.DirectPath),
			Mimetype:      proto.String(media.MimeType),
			FileLength:    proto.Uint64(up.FileLength),
			FileSHA256:    up.FileSHA256,
			FileEncSHA256: up.FileEncSHA256,
			MediaKey:      up.MediaKey,
		}}
	}
	return &waE2E.Message{DocumentMessage: &waE2E.DocumentMessage{
		URL:           proto.String(up.URL),
		DirectPath:    proto.String(up.DirectPath),
		Mimetype:      proto.String(media.MimeType),
		FileName:      proto.String(media.FileName),
		Title:         proto.String(media.FileName),
		Caption:       proto.String(caption),
		FileLength:    proto.Uint64(up.FileLength),
		FileSHA256:    up.FileSHA256,
		FileEncSHA256: up.FileEncSHA256,
		MediaKey:      up.MediaKey,
	}}
}

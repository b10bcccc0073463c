package rasterizer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"labreport-service/internal/app/contracts"
	"labreport-service/internal/app/models"
	"labreport-service/internal/pkg/constvars"
	"labreport-service/internal/pkg/exceptions"
	"labreport-service/internal/pkg/utils"
	"sync/atomic"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
)

const (
	DefaultScale       = 2.0
	DefaultJPEGQuality = 92
	DefaultQRCodeSize  = 100
)

var errNoPages = errors.New("no pages to export")

type Options struct {
	Scale       float64
	JPEGQuality int
	QRCodeSize  int
}

func (o Options) withDefaults() Options {
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.JPEGQuality <= 0 || o.JPEGQuality > 100 {
		o.JPEGQuality = DefaultJPEGQuality
	}
	if o.QRCodeSize <= 0 {
		o.QRCodeSize = DefaultQRCodeSize
	}
	return o
}

// LabReportExporter rasterizes composed pages and places each one, full
// width, on its own A4 page of a PDF document.
type LabReportExporter struct {
	Options Options
	Log     *zap.Logger

	activeScaffolds atomic.Int32
}

var _ contracts.LabReportExporter = (*LabReportExporter)(nil)

func NewLabReportExporter(opts Options, logger *zap.Logger) *LabReportExporter {
	return &LabReportExporter{
		Options: opts.withDefaults(),
		Log:     logger,
	}
}

// ActiveScaffolds reports how many rendering surfaces are currently attached.
func (e *LabReportExporter) ActiveScaffolds() int {
	return int(e.activeScaffolds.Load())
}

func (e *LabReportExporter) Export(ctx context.Context, pages []models.ReportPage) (*models.ReportArtifact, error) {
	requestID := utils.RequestIDFromContext(ctx)
	e.Log.Info("LabReportExporter.Export called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingPageCountKey, len(pages)),
	)

	if len(pages) == 0 {
		return nil, exceptions.ErrAssembleLabReportPDF(errNoPages)
	}

	surface, err := e.attachScaffold()
	if err != nil {
		return nil, exceptions.ErrRenderLabReportPage(err, 0)
	}
	defer e.detachScaffold(surface)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pageWidth, _ := pdf.GetPageSize()

	qrCodes := make(map[string]image.Image)
	for i, page := range pages {
		if err := ctx.Err(); err != nil {
			e.Log.Warn("LabReportExporter.Export cancelled",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Int(constvars.LoggingPageIndexKey, i),
				zap.Error(err),
			)
			return nil, exceptions.ErrRenderLabReportPage(err, i)
		}

		qrCode, err := e.qrCodeFor(qrCodes, page.Header.QRCodeURL)
		if err != nil {
			return nil, err
		}

		rendered, overflow := surface.render(page, qrCode)
		if overflow {
			e.warnOverflow(requestID, i, page)
		}

		var encoded bytes.Buffer
		if err := jpeg.Encode(&encoded, rendered, &jpeg.Options{Quality: e.Options.JPEGQuality}); err != nil {
			return nil, exceptions.ErrEncodeLabReportPage(err, i)
		}

		bounds := rendered.Bounds()
		name := fmt.Sprintf("page-%d", i)
		imageOptions := gofpdf.ImageOptions{ImageType: "JPG"}
		pdf.RegisterImageOptionsReader(name, imageOptions, &encoded)
		pdf.AddPage()
		pdf.ImageOptions(name, 0, 0, pageWidth, pageWidth*float64(bounds.Dy())/float64(bounds.Dx()), false, imageOptions, 0, "")

		e.Log.Debug("LabReportExporter.Export page rendered",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingPageIndexKey, i),
		)
	}

	if err := pdf.Error(); err != nil {
		return nil, exceptions.ErrAssembleLabReportPDF(err)
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, exceptions.ErrAssembleLabReportPDF(err)
	}

	artifact := &models.ReportArtifact{
		ContentType: constvars.MIMEApplicationPDF,
		Content:     out.Bytes(),
	}
	e.Log.Info("LabReportExporter.Export succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingPageCountKey, len(pages)),
		zap.Int(constvars.LoggingArtifactSizeKey, artifact.Size()),
	)
	return artifact, nil
}

// RenderPage draws a single page and returns the raster image.
func (e *LabReportExporter) RenderPage(page models.ReportPage) (image.Image, error) {
	surface, err := e.attachScaffold()
	if err != nil {
		return nil, exceptions.ErrRenderLabReportPage(err, 0)
	}
	defer e.detachScaffold(surface)

	qrCode, err := e.qrCodeFor(map[string]image.Image{}, page.Header.QRCodeURL)
	if err != nil {
		return nil, err
	}
	rendered, overflow := surface.render(page, qrCode)
	if overflow {
		e.warnOverflow("", 0, page)
	}
	return rendered, nil
}

func (e *LabReportExporter) warnOverflow(requestID string, pageIndex int, page models.ReportPage) {
	e.Log.Warn("LabReportExporter page body does not fit above the footer and was cut",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingPageIndexKey, pageIndex),
		zap.Int(constvars.LoggingSectionCountKey, len(page.Body)),
	)
}

func (e *LabReportExporter) qrCodeFor(cache map[string]image.Image, url string) (image.Image, error) {
	if url == "" {
		return nil, nil
	}
	if qrCode, ok := cache[url]; ok {
		return qrCode, nil
	}
	qrCode, err := GenerateQRCode(url, e.Options.QRCodeSize)
	if err != nil {
		return nil, err
	}
	qrCode = fitSquare(qrCode, int(qrCodeSize*e.Options.Scale))
	cache[url] = qrCode
	return qrCode, nil
}

func (e *LabReportExporter) attachScaffold() (*scaffold, error) {
	surface, err := newScaffold(e.Options.Scale)
	if err != nil {
		return nil, err
	}
	e.activeScaffolds.Add(1)
	return surface, nil
}

func (e *LabReportExporter) detachScaffold(surface *scaffold) {
	surface.release()
	e.activeScaffolds.Add(-1)
}

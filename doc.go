// Package brush provides the tip engine of a raster painting brush: it
// decodes brush files into tips and produces the dab a tip stamps at each
// point of a stroke.
//
// # Overview
//
// A [Tip] is one of three kinds:
//   - raster tips resample a decoded image through a lazily built pyramid
//     of pre-scaled levels;
//   - procedural tips render a circle or rectangle mask with a hard, soft,
//     Gaussian or eased edge;
//   - pipe tips hold several child tips and pick one per dab from the
//     pen pressure, angle, speed, tilt, a counter or a random stream.
//
// # Quick Start
//
//	import "github.com/gogpu/brush"
//
//	coll, err := brush.Decode(data, "charcoal.abr")
//	if err != nil && coll == nil {
//	    return err
//	}
//	tip := coll.Tips()[0].Clone() // one clone per stroke
//
//	tip.NotifyStrokeStarted()
//	sample := brush.PaintSample{Pressure: 0.8}
//	dab := tip.ProduceDab(0.5, 0, 0.25, 0.75, sample, brush.NewPlainColor(color.Black))
//	tip.NotifyDabPainted(sample)
//
// # Decoding
//
// [Decode] reads Photoshop .abr archives (versions 1, 2, 6.1 and 6.2),
// GIMP .gbr brushes and .gih image hoses, and single png, jpeg, gif, bmp,
// tiff or webp images. Damaged records are skipped and reported in
// [Collection.Warnings]; failures that leave no tips satisfy
// errors.Is(err, [ErrUnreadable]).
//
// # Concurrency
//
// Pixel data, pyramids and procedural dab caches are immutable or
// internally synchronised and are shared by a tip and its clones. Pipe
// selection state is not: clone a tip for every stroke that may run
// concurrently with another.
//
// # Logging
//
// The package is silent by default. Use [SetLogger] or [WithLogger] to
// receive skipped-record warnings and pyramid build diagnostics.
package brush

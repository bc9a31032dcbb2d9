// Package element defines the tagged tree of domain elements a page
// resolves into: Page, its numbering, steps, parts lists, parts, and
// the assorted small graphics that decorate an assembly instruction
// page. Types here carry no classification behavior; they are the
// output shape classifiers build into and the schema package reflects
// over to auto-derive structural constraints.
//
// Child fields are tagged with `child:"required|optional|sequence"` so
// pkg/schema can walk the tree without a hand-maintained constraint
// list. "required" fields are plain structs, "optional" are pointers,
// "sequence" are slices.
package element

import "github.com/dshills/legoclassify/pkg/geometry"

// Kind identifies which LegoPageElement variant a value is.
type Kind int

const (
	KindPage Kind = iota
	KindPageNumber
	KindStep
	KindStepNumber
	KindSubstepNumber
	KindPartsList
	KindPart
	KindPartCount
	KindPartImage
	KindPartNumber
	KindPieceLength
	KindDiagram
	KindArrow
	KindRotationSymbol
	KindSubAssembly
	KindSubStep
	KindBagNumber
	KindOpenBag
	KindProgressBar
	KindProgressBarIndicator
	KindDivider
	KindBackground
	KindLoosePartSymbol
	KindShine
)

var kindNames = map[Kind]string{
	KindPage:                 "Page",
	KindPageNumber:           "PageNumber",
	KindStep:                 "Step",
	KindStepNumber:           "StepNumber",
	KindSubstepNumber:        "SubstepNumber",
	KindPartsList:            "PartsList",
	KindPart:                 "Part",
	KindPartCount:            "PartCount",
	KindPartImage:            "PartImage",
	KindPartNumber:           "PartNumber",
	KindPieceLength:          "PieceLength",
	KindDiagram:              "Diagram",
	KindArrow:                "Arrow",
	KindRotationSymbol:       "RotationSymbol",
	KindSubAssembly:          "SubAssembly",
	KindSubStep:              "SubStep",
	KindBagNumber:            "BagNumber",
	KindOpenBag:              "OpenBag",
	KindProgressBar:          "ProgressBar",
	KindProgressBarIndicator: "ProgressBarIndicator",
	KindDivider:              "Divider",
	KindBackground:           "Background",
	KindLoosePartSymbol:      "LoosePartSymbol",
	KindShine:                "Shine",
}

// String returns the string representation of a Kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// LegoPageElement is implemented by every concrete element type.
type LegoPageElement interface {
	ElementType() Kind
	Bounds() geometry.BBox
}

// Page is the root element for one document page.
type Page struct {
	BBox             geometry.BBox    `json:"bbox"`
	PageNumber       *PageNumber      `json:"pageNumber,omitempty" child:"optional"`
	Steps            []Step           `json:"steps,omitempty" child:"sequence"`
	PartsLists       []PartsList      `json:"partsLists,omitempty" child:"sequence"`
	Background       *Background      `json:"background,omitempty" child:"optional"`
	ProgressBar      *ProgressBar     `json:"progressBar,omitempty" child:"optional"`
	StandaloneArrows []Arrow          `json:"standaloneArrows,omitempty" child:"sequence"`
}

func (e Page) ElementType() Kind        { return KindPage }
func (e Page) Bounds() geometry.BBox    { return e.BBox }

// PageNumber is the printed page index.
type PageNumber struct {
	BBox  geometry.BBox `json:"bbox"`
	Value int           `json:"value"`
}

func (e PageNumber) ElementType() Kind     { return KindPageNumber }
func (e PageNumber) Bounds() geometry.BBox { return e.BBox }

// Step is one assembly instruction step.
type Step struct {
	BBox          geometry.BBox  `json:"bbox"`
	Number        StepNumber     `json:"number" child:"required"`
	PartsList     *PartsList     `json:"partsList,omitempty" child:"optional"`
	Diagram       *Diagram       `json:"diagram,omitempty" child:"optional" assignment:"spatial"`
	Arrows        []Arrow        `json:"arrows,omitempty" child:"sequence" assignment:"spatial"`
	SubAssemblies []SubAssembly  `json:"subAssemblies,omitempty" child:"sequence" assignment:"spatial"`
	SubSteps      []SubStep      `json:"subSteps,omitempty" child:"sequence"`
}

func (e Step) ElementType() Kind     { return KindStep }
func (e Step) Bounds() geometry.BBox { return e.BBox }

// StepNumber is the large numeral identifying a Step.
type StepNumber struct {
	BBox  geometry.BBox `json:"bbox"`
	Value int           `json:"value"`
}

func (e StepNumber) ElementType() Kind     { return KindStepNumber }
func (e StepNumber) Bounds() geometry.BBox { return e.BBox }

// SubstepNumber identifies a SubStep within a Step.
type SubstepNumber struct {
	BBox  geometry.BBox `json:"bbox"`
	Value string        `json:"value"`
}

func (e SubstepNumber) ElementType() Kind     { return KindSubstepNumber }
func (e SubstepNumber) Bounds() geometry.BBox { return e.BBox }

// SubStep is a nested step used for sub-assembly insertion sequences.
type SubStep struct {
	BBox   geometry.BBox  `json:"bbox"`
	Number SubstepNumber  `json:"number" child:"required"`
	Diagram *Diagram      `json:"diagram,omitempty" child:"optional" assignment:"spatial"`
}

func (e SubStep) ElementType() Kind     { return KindSubStep }
func (e SubStep) Bounds() geometry.BBox { return e.BBox }

// PartsList is a bill-of-materials block for one step, listing the
// parts consumed in that step.
type PartsList struct {
	BBox      geometry.BBox `json:"bbox"`
	Parts     []Part        `json:"parts" child:"sequence"`
	BagNumber *BagNumber    `json:"bagNumber,omitempty" child:"optional"`
}

func (e PartsList) ElementType() Kind     { return KindPartsList }
func (e PartsList) Bounds() geometry.BBox { return e.BBox }

// Part is a single entry within a PartsList: a count, an image, and
// optional identifying text.
type Part struct {
	BBox        geometry.BBox `json:"bbox"`
	Count       PartCount     `json:"count" child:"required"`
	Diagram     PartImage     `json:"diagram" child:"required"`
	PartNumber  *PartNumber   `json:"partNumber,omitempty" child:"optional"`
	PieceLength *PieceLength  `json:"pieceLength,omitempty" child:"optional"`
}

func (e Part) ElementType() Kind     { return KindPart }
func (e Part) Bounds() geometry.BBox { return e.BBox }

// PartCount is the "Nx" multiplier text next to a part image.
type PartCount struct {
	BBox  geometry.BBox `json:"bbox"`
	Value int           `json:"value"`
}

func (e PartCount) ElementType() Kind     { return KindPartCount }
func (e PartCount) Bounds() geometry.BBox { return e.BBox }

// PartImage wraps the raster image of a single part.
type PartImage struct {
	BBox geometry.BBox `json:"bbox"`
}

func (e PartImage) ElementType() Kind     { return KindPartImage }
func (e PartImage) Bounds() geometry.BBox { return e.BBox }

// PartNumber is the manufacturer part number printed near a Part.
type PartNumber struct {
	BBox  geometry.BBox `json:"bbox"`
	Value string        `json:"value"`
}

func (e PartNumber) ElementType() Kind     { return KindPartNumber }
func (e PartNumber) Bounds() geometry.BBox { return e.BBox }

// PieceLength is a stud-length annotation for elongated parts
// (technic beams, axles, and the like).
type PieceLength struct {
	BBox  geometry.BBox `json:"bbox"`
	Value int           `json:"value"`
}

func (e PieceLength) ElementType() Kind     { return KindPieceLength }
func (e PieceLength) Bounds() geometry.BBox { return e.BBox }

// Diagram is the main illustration of a Step or SubStep.
type Diagram struct {
	BBox geometry.BBox `json:"bbox"`
}

func (e Diagram) ElementType() Kind     { return KindDiagram }
func (e Diagram) Bounds() geometry.BBox { return e.BBox }

// Arrow is a directional glyph annotating part placement or motion.
type Arrow struct {
	BBox geometry.BBox `json:"bbox"`
}

func (e Arrow) ElementType() Kind     { return KindArrow }
func (e Arrow) Bounds() geometry.BBox { return e.BBox }

// RotationSymbol marks that a sub-assembly must be rotated before the
// next step.
type RotationSymbol struct {
	BBox geometry.BBox `json:"bbox"`
}

func (e RotationSymbol) ElementType() Kind     { return KindRotationSymbol }
func (e RotationSymbol) Bounds() geometry.BBox { return e.BBox }

// SubAssembly is a highlighted cluster of drawings representing a
// partially built unit to be inserted into the main model.
type SubAssembly struct {
	BBox  geometry.BBox `json:"bbox"`
	Count int           `json:"count"`
}

func (e SubAssembly) ElementType() Kind     { return KindSubAssembly }
func (e SubAssembly) Bounds() geometry.BBox { return e.BBox }

// BagNumber identifies which numbered parts bag a step's parts come
// from.
type BagNumber struct {
	BBox  geometry.BBox `json:"bbox"`
	Value int           `json:"value"`
}

func (e BagNumber) ElementType() Kind     { return KindBagNumber }
func (e BagNumber) Bounds() geometry.BBox { return e.BBox }

// OpenBag is the "open bag N" glyph paired with the bag it refers to
// and the parts it introduces.
type OpenBag struct {
	BBox      geometry.BBox `json:"bbox"`
	BagNumber BagNumber     `json:"bagNumber" child:"required"`
	Parts     []Part        `json:"parts,omitempty" child:"sequence"`
}

func (e OpenBag) ElementType() Kind     { return KindOpenBag }
func (e OpenBag) Bounds() geometry.BBox { return e.BBox }

// ProgressBar is the strip of step indicators running along a page
// edge.
type ProgressBar struct {
	BBox        geometry.BBox          `json:"bbox"`
	Indicators  []ProgressBarIndicator `json:"indicators,omitempty" child:"sequence" assignment:"spatial"`
}

func (e ProgressBar) ElementType() Kind     { return KindProgressBar }
func (e ProgressBar) Bounds() geometry.BBox { return e.BBox }

// ProgressBarIndicator is one tick of a ProgressBar.
type ProgressBarIndicator struct {
	BBox   geometry.BBox `json:"bbox"`
	Filled bool          `json:"filled"`
}

func (e ProgressBarIndicator) ElementType() Kind     { return KindProgressBarIndicator }
func (e ProgressBarIndicator) Bounds() geometry.BBox { return e.BBox }

// Divider is a ruled line separating page regions.
type Divider struct {
	BBox geometry.BBox `json:"bbox"`
}

func (e Divider) ElementType() Kind     { return KindDivider }
func (e Divider) Bounds() geometry.BBox { return e.BBox }

// Background is the full-bleed backdrop drawing behind a page's
// content.
type Background struct {
	BBox geometry.BBox `json:"bbox"`
}

func (e Background) ElementType() Kind     { return KindBackground }
func (e Background) Bounds() geometry.BBox { return e.BBox }

// LoosePartSymbol marks a part that is not attached to the model yet.
type LoosePartSymbol struct {
	BBox geometry.BBox `json:"bbox"`
}

func (e LoosePartSymbol) ElementType() Kind     { return KindLoosePartSymbol }
func (e LoosePartSymbol) Bounds() geometry.BBox { return e.BBox }

// Shine is a small highlight glyph decorating a newly-placed part.
type Shine struct {
	BBox geometry.BBox `json:"bbox"`
}

func (e Shine) ElementType() Kind     { return KindShine }
func (e Shine) Bounds() geometry.BBox { return e.BBox }

// AllSamples returns one zero-valued instance of every LegoPageElement
// variant, keyed by nothing in particular — callers needing a
// type-to-Kind or Kind-to-struct-tag lookup (pkg/schema, pkg/classify)
// range over this instead of hand-maintaining their own variant list.
func AllSamples() []LegoPageElement {
	return []LegoPageElement{
		Page{}, PageNumber{}, Step{}, StepNumber{}, SubstepNumber{},
		PartsList{}, Part{}, PartCount{}, PartImage{}, PartNumber{},
		PieceLength{}, Diagram{}, Arrow{}, RotationSymbol{}, SubAssembly{},
		SubStep{}, BagNumber{}, OpenBag{}, ProgressBar{}, ProgressBarIndicator{},
		Divider{}, Background{}, LoosePartSymbol{}, Shine{},
	}
}

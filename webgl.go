package glcache

// WebGL enums used by the default table.
const (
	// capabilities
	BLEND                    Param = 0x0BE2
	CULL_FACE                Param = 0x0B44
	DEPTH_TEST               Param = 0x0B71
	DITHER                   Param = 0x0BD0
	POLYGON_OFFSET_FILL      Param = 0x8037
	SAMPLE_ALPHA_TO_COVERAGE Param = 0x809E
	SAMPLE_COVERAGE          Param = 0x80A0
	SCISSOR_TEST             Param = 0x0C11
	STENCIL_TEST             Param = 0x0B90
	RASTERIZER_DISCARD       Param = 0x8C89

	ACTIVE_TEXTURE         Param = 0x84E0
	BLEND_COLOR            Param = 0x8005
	BLEND_EQUATION_RGB     Param = 0x8009
	BLEND_EQUATION_ALPHA   Param = 0x883D
	BLEND_SRC_RGB          Param = 0x80C9
	BLEND_DST_RGB          Param = 0x80C8
	BLEND_SRC_ALPHA        Param = 0x80CB
	BLEND_DST_ALPHA        Param = 0x80CA
	COLOR_CLEAR_VALUE      Param = 0x0C22
	COLOR_WRITEMASK        Param = 0x0C23
	CULL_FACE_MODE         Param = 0x0B45
	DEPTH_CLEAR_VALUE      Param = 0x0B73
	DEPTH_FUNC             Param = 0x0B74
	DEPTH_RANGE            Param = 0x0B70
	DEPTH_WRITEMASK        Param = 0x0B72
	FRONT_FACE             Param = 0x0B46
	GENERATE_MIPMAP_HINT   Param = 0x8192
	LINE_WIDTH             Param = 0x0B21
	POLYGON_OFFSET_FACTOR  Param = 0x8038
	POLYGON_OFFSET_UNITS   Param = 0x2A00
	SAMPLE_COVERAGE_VALUE  Param = 0x80AA
	SAMPLE_COVERAGE_INVERT Param = 0x80AB
	SCISSOR_BOX            Param = 0x0C10
	VIEWPORT               Param = 0x0BA2

	STENCIL_FUNC                 Param = 0x0B92
	STENCIL_REF                  Param = 0x0B97
	STENCIL_VALUE_MASK           Param = 0x0B93
	STENCIL_FAIL                 Param = 0x0B94
	STENCIL_PASS_DEPTH_FAIL      Param = 0x0B95
	STENCIL_PASS_DEPTH_PASS      Param = 0x0B96
	STENCIL_WRITEMASK            Param = 0x0B98
	STENCIL_BACK_FUNC            Param = 0x8800
	STENCIL_BACK_REF             Param = 0x8CA3
	STENCIL_BACK_VALUE_MASK      Param = 0x8CA4
	STENCIL_BACK_FAIL            Param = 0x8801
	STENCIL_BACK_PASS_DEPTH_FAIL Param = 0x8802
	STENCIL_BACK_PASS_DEPTH_PASS Param = 0x8803
	STENCIL_BACK_WRITEMASK       Param = 0x8CA5
	STENCIL_CLEAR_VALUE          Param = 0x0B91

	PACK_ALIGNMENT                     Param = 0x0D05
	UNPACK_ALIGNMENT                   Param = 0x0CF5
	UNPACK_FLIP_Y_WEBGL                Param = 0x9240
	UNPACK_PREMULTIPLY_ALPHA_WEBGL     Param = 0x9241
	UNPACK_COLORSPACE_CONVERSION_WEBGL Param = 0x9243

	// object bindings, never cached
	CURRENT_PROGRAM              Param = 0x8B8D
	ARRAY_BUFFER_BINDING         Param = 0x8894
	ELEMENT_ARRAY_BUFFER_BINDING Param = 0x8895
	FRAMEBUFFER_BINDING          Param = 0x8CA6
	RENDERBUFFER_BINDING         Param = 0x8CA7
	TEXTURE_BINDING_2D           Param = 0x8069
	TEXTURE_BINDING_CUBE_MAP     Param = 0x8514

	// limits, filled lazily
	MAX_TEXTURE_SIZE                 Param = 0x0D33
	MAX_VERTEX_ATTRIBS               Param = 0x8869
	MAX_VIEWPORT_DIMS                Param = 0x0D3A
	MAX_COMBINED_TEXTURE_IMAGE_UNITS Param = 0x8B4D

	// values
	FRONT                 Param = 0x0404
	BACK                  Param = 0x0405
	FRONT_AND_BACK        Param = 0x0408
	CCW                   Param = 0x0901
	LESS                  Param = 0x0201
	ALWAYS                Param = 0x0207
	KEEP                  Param = 0x1E00
	ZERO                  Param = 0
	ONE                   Param = 1
	FUNC_ADD              Param = 0x8006
	DONT_CARE             Param = 0x1100
	TEXTURE0              Param = 0x84C0
	BROWSER_DEFAULT_WEBGL Param = 0x9244
)

// WebGL setter names.
const (
	OpEnable                = "enable"
	OpDisable               = "disable"
	OpActiveTexture         = "activeTexture"
	OpBlendColor            = "blendColor"
	OpBlendEquation         = "blendEquation"
	OpBlendEquationSeparate = "blendEquationSeparate"
	OpBlendFunc             = "blendFunc"
	OpBlendFuncSeparate     = "blendFuncSeparate"
	OpClearColor            = "clearColor"
	OpClearDepth            = "clearDepth"
	OpClearStencil          = "clearStencil"
	OpColorMask             = "colorMask"
	OpCullFace              = "cullFace"
	OpDepthFunc             = "depthFunc"
	OpDepthMask             = "depthMask"
	OpDepthRange            = "depthRange"
	OpFrontFace             = "frontFace"
	OpHint                  = "hint"
	OpLineWidth             = "lineWidth"
	OpPixelStorei           = "pixelStorei"
	OpPolygonOffset         = "polygonOffset"
	OpSampleCoverage        = "sampleCoverage"
	OpScissor               = "scissor"
	OpStencilFunc           = "stencilFunc"
	OpStencilFuncSeparate   = "stencilFuncSeparate"
	OpStencilMask           = "stencilMask"
	OpStencilMaskSeparate   = "stencilMaskSeparate"
	OpStencilOp             = "stencilOp"
	OpStencilOpSeparate     = "stencilOpSeparate"
	OpViewport              = "viewport"
	OpUseProgram            = "useProgram"
)

var webglCapabilities = []Param{
	BLEND, CULL_FACE, DEPTH_TEST, DITHER, POLYGON_OFFSET_FILL,
	SAMPLE_ALPHA_TO_COVERAGE, SAMPLE_COVERAGE, SCISSOR_TEST, STENCIL_TEST,
	RASTERIZER_DISCARD,
}

var (
	stencilFront      = []Param{STENCIL_FUNC, STENCIL_REF, STENCIL_VALUE_MASK}
	stencilBack       = []Param{STENCIL_BACK_FUNC, STENCIL_BACK_REF, STENCIL_BACK_VALUE_MASK}
	stencilOpFront    = []Param{STENCIL_FAIL, STENCIL_PASS_DEPTH_FAIL, STENCIL_PASS_DEPTH_PASS}
	stencilOpBack     = []Param{STENCIL_BACK_FAIL, STENCIL_BACK_PASS_DEPTH_FAIL, STENCIL_BACK_PASS_DEPTH_PASS}
	webglFaces        = Face{Front: FRONT, Back: BACK, FrontAndBack: FRONT_AND_BACK}
	pixelStoreBools   = []Param{UNPACK_FLIP_Y_WEBGL, UNPACK_PREMULTIPLY_ALPHA_WEBGL}
	pixelStoreParams  = []Param{PACK_ALIGNMENT, UNPACK_ALIGNMENT, UNPACK_FLIP_Y_WEBGL, UNPACK_PREMULTIPLY_ALPHA_WEBGL, UNPACK_COLORSPACE_CONVERSION_WEBGL}
	defaultStencilMsk = int64(0xFFFFFFFF)
)

// WebGL returns the parameter table of a WebGL 1/2 context. VIEWPORT and
// SCISSOR_BOX depend on the drawing buffer size and have no default; they
// are filled from the context on first use. Each call returns a fresh table.
func WebGL() *Table {
	t := &Table{
		Defaults: map[Param]Value{
			ACTIVE_TEXTURE:         Enum(TEXTURE0),
			BLEND_COLOR:            Floats(0, 0, 0, 0),
			BLEND_EQUATION_RGB:     Enum(FUNC_ADD),
			BLEND_EQUATION_ALPHA:   Enum(FUNC_ADD),
			BLEND_SRC_RGB:          Enum(ONE),
			BLEND_SRC_ALPHA:        Enum(ONE),
			BLEND_DST_RGB:          Enum(ZERO),
			BLEND_DST_ALPHA:        Enum(ZERO),
			COLOR_CLEAR_VALUE:      Floats(0, 0, 0, 0),
			COLOR_WRITEMASK:        Bools(true, true, true, true),
			CULL_FACE_MODE:         Enum(BACK),
			DEPTH_CLEAR_VALUE:      Float(1),
			DEPTH_FUNC:             Enum(LESS),
			DEPTH_RANGE:            Floats(0, 1),
			DEPTH_WRITEMASK:        Bool(true),
			FRONT_FACE:             Enum(CCW),
			GENERATE_MIPMAP_HINT:   Enum(DONT_CARE),
			LINE_WIDTH:             Float(1),
			POLYGON_OFFSET_FACTOR:  Float(0),
			POLYGON_OFFSET_UNITS:   Float(0),
			SAMPLE_COVERAGE_VALUE:  Float(1),
			SAMPLE_COVERAGE_INVERT: Bool(false),

			STENCIL_FUNC:                 Enum(ALWAYS),
			STENCIL_REF:                  Int(0),
			STENCIL_VALUE_MASK:           Int(defaultStencilMsk),
			STENCIL_FAIL:                 Enum(KEEP),
			STENCIL_PASS_DEPTH_FAIL:      Enum(KEEP),
			STENCIL_PASS_DEPTH_PASS:      Enum(KEEP),
			STENCIL_WRITEMASK:            Int(defaultStencilMsk),
			STENCIL_BACK_FUNC:            Enum(ALWAYS),
			STENCIL_BACK_REF:             Int(0),
			STENCIL_BACK_VALUE_MASK:      Int(defaultStencilMsk),
			STENCIL_BACK_FAIL:            Enum(KEEP),
			STENCIL_BACK_PASS_DEPTH_FAIL: Enum(KEEP),
			STENCIL_BACK_PASS_DEPTH_PASS: Enum(KEEP),
			STENCIL_BACK_WRITEMASK:       Int(defaultStencilMsk),
			STENCIL_CLEAR_VALUE:          Int(0),

			PACK_ALIGNMENT:                     Int(4),
			UNPACK_ALIGNMENT:                   Int(4),
			UNPACK_FLIP_Y_WEBGL:                Bool(false),
			UNPACK_PREMULTIPLY_ALPHA_WEBGL:     Bool(false),
			UNPACK_COLORSPACE_CONVERSION_WEBGL: Enum(BROWSER_DEFAULT_WEBGL),
		},
		Blacklist: map[Param]struct{}{
			CURRENT_PROGRAM:              {},
			ARRAY_BUFFER_BINDING:         {},
			ELEMENT_ARRAY_BUFFER_BINDING: {},
			FRAMEBUFFER_BINDING:          {},
			RENDERBUFFER_BINDING:         {},
			TEXTURE_BINDING_2D:           {},
			TEXTURE_BINDING_CUBE_MAP:     {},
		},
		Capabilities: make(map[Param]struct{}, len(webglCapabilities)),
		Adapters: map[string]Adapter{
			OpEnable:                Capability(true),
			OpDisable:               Capability(false),
			OpActiveTexture:         Scalar(ACTIVE_TEXTURE),
			OpBlendColor:            Vector(BLEND_COLOR, KindFloats),
			OpBlendEquation:         Fanout([]Param{BLEND_EQUATION_RGB, BLEND_EQUATION_ALPHA}),
			OpBlendEquationSeparate: Each(BLEND_EQUATION_RGB, BLEND_EQUATION_ALPHA),
			OpBlendFunc:             Fanout([]Param{BLEND_SRC_RGB, BLEND_SRC_ALPHA}, []Param{BLEND_DST_RGB, BLEND_DST_ALPHA}),
			OpBlendFuncSeparate:     Each(BLEND_SRC_RGB, BLEND_DST_RGB, BLEND_SRC_ALPHA, BLEND_DST_ALPHA),
			OpClearColor:            Vector(COLOR_CLEAR_VALUE, KindFloats),
			OpClearDepth:            Scalar(DEPTH_CLEAR_VALUE),
			OpClearStencil:          Scalar(STENCIL_CLEAR_VALUE),
			OpColorMask:             Vector(COLOR_WRITEMASK, KindBools),
			OpCullFace:              Scalar(CULL_FACE_MODE),
			OpDepthFunc:             Scalar(DEPTH_FUNC),
			OpDepthMask:             Scalar(DEPTH_WRITEMASK),
			OpDepthRange:            Vector(DEPTH_RANGE, KindFloats),
			OpFrontFace:             Scalar(FRONT_FACE),
			OpHint:                  Keyed(),
			OpLineWidth:             Scalar(LINE_WIDTH),
			OpPixelStorei:           Keyed(pixelStoreBools...),
			OpPolygonOffset:         Each(POLYGON_OFFSET_FACTOR, POLYGON_OFFSET_UNITS),
			OpSampleCoverage:        Each(SAMPLE_COVERAGE_VALUE, SAMPLE_COVERAGE_INVERT),
			OpScissor:               Vector(SCISSOR_BOX, KindInts),
			OpStencilFunc: Fanout(
				[]Param{STENCIL_FUNC, STENCIL_BACK_FUNC},
				[]Param{STENCIL_REF, STENCIL_BACK_REF},
				[]Param{STENCIL_VALUE_MASK, STENCIL_BACK_VALUE_MASK},
			),
			OpStencilFuncSeparate: Faced(webglFaces, stencilFront, stencilBack),
			OpStencilMask:         Fanout([]Param{STENCIL_WRITEMASK, STENCIL_BACK_WRITEMASK}),
			OpStencilMaskSeparate: Faced(webglFaces, []Param{STENCIL_WRITEMASK}, []Param{STENCIL_BACK_WRITEMASK}),
			OpStencilOp: Fanout(
				[]Param{STENCIL_FAIL, STENCIL_BACK_FAIL},
				[]Param{STENCIL_PASS_DEPTH_FAIL, STENCIL_BACK_PASS_DEPTH_FAIL},
				[]Param{STENCIL_PASS_DEPTH_PASS, STENCIL_BACK_PASS_DEPTH_PASS},
			),
			OpStencilOpSeparate: Faced(webglFaces, stencilOpFront, stencilOpBack),
			OpViewport:          Vector(VIEWPORT, KindInts),
		},
		ProgramOp:    OpUseProgram,
		ProgramParam: CURRENT_PROGRAM,
	}

	for _, c := range webglCapabilities {
		t.Capabilities[c] = struct{}{}
		t.Defaults[c] = Bool(c == DITHER)
		t.Rule(Toggle(OpEnable, OpDisable, c))
	}

	t.Rule(Direct(OpActiveTexture, ACTIVE_TEXTURE))
	t.Rule(Unpacked(OpBlendColor, BLEND_COLOR))
	t.Rule(Direct(OpBlendEquationSeparate, BLEND_EQUATION_RGB, BLEND_EQUATION_ALPHA))
	t.Rule(Direct(OpBlendFuncSeparate, BLEND_SRC_RGB, BLEND_DST_RGB, BLEND_SRC_ALPHA, BLEND_DST_ALPHA))
	t.Rule(Unpacked(OpClearColor, COLOR_CLEAR_VALUE))
	t.Rule(Direct(OpClearDepth, DEPTH_CLEAR_VALUE))
	t.Rule(Direct(OpClearStencil, STENCIL_CLEAR_VALUE))
	t.Rule(Unpacked(OpColorMask, COLOR_WRITEMASK))
	t.Rule(Direct(OpCullFace, CULL_FACE_MODE))
	t.Rule(Direct(OpDepthFunc, DEPTH_FUNC))
	t.Rule(Direct(OpDepthMask, DEPTH_WRITEMASK))
	t.Rule(Unpacked(OpDepthRange, DEPTH_RANGE))
	t.Rule(Direct(OpFrontFace, FRONT_FACE))
	t.Rule(Stored(OpHint, GENERATE_MIPMAP_HINT))
	t.Rule(Direct(OpLineWidth, LINE_WIDTH))
	t.Rule(Direct(OpPolygonOffset, POLYGON_OFFSET_FACTOR, POLYGON_OFFSET_UNITS))
	t.Rule(Direct(OpSampleCoverage, SAMPLE_COVERAGE_VALUE, SAMPLE_COVERAGE_INVERT))
	t.Rule(Unpacked(OpScissor, SCISSOR_BOX))
	t.Rule(Unpacked(OpViewport, VIEWPORT))
	t.Rule(Prefixed(OpStencilFuncSeparate, Enum(FRONT), stencilFront...))
	t.Rule(Prefixed(OpStencilFuncSeparate, Enum(BACK), stencilBack...))
	t.Rule(Prefixed(OpStencilOpSeparate, Enum(FRONT), stencilOpFront...))
	t.Rule(Prefixed(OpStencilOpSeparate, Enum(BACK), stencilOpBack...))
	t.Rule(Prefixed(OpStencilMaskSeparate, Enum(FRONT), STENCIL_WRITEMASK))
	t.Rule(Prefixed(OpStencilMaskSeparate, Enum(BACK), STENCIL_BACK_WRITEMASK))
	for _, p := range pixelStoreParams {
		t.Rule(Stored(OpPixelStorei, p))
	}
	return t
}

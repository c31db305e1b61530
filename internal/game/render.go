package game

import (
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Renderer draws a flat top-down view of the simulation: colored quads for
// the world and vehicles, point sprites for obstacles. Vertex data is built
// on the CPU each frame and streamed.
type Renderer struct {
	flatProg   uint32
	markerProg uint32

	flatVAO, flatVBO     uint32
	markerVAO, markerVBO uint32

	verts   []float32
	markers []float32

	zoom float64
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{zoom: 4}

	var err error
	if r.flatProg, err = linkProgram(flatVertSrc, flatFragSrc); err != nil {
		return nil, err
	}
	if r.markerProg, err = linkProgram(markerVertSrc, markerFragSrc); err != nil {
		return nil, err
	}

	gl.GenVertexArrays(1, &r.flatVAO)
	gl.GenBuffers(1, &r.flatVBO)
	gl.BindVertexArray(r.flatVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.flatVBO)
	// x, z, r, g, b
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 5*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 5*4, gl.PtrOffset(2*4))

	gl.GenVertexArrays(1, &r.markerVAO)
	gl.GenBuffers(1, &r.markerVBO)
	gl.BindVertexArray(r.markerVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.markerVBO)
	// x, z, size, r, g, b
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 6*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, 6*4, gl.PtrOffset(2*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 3, gl.FLOAT, false, 6*4, gl.PtrOffset(3*4))

	gl.BindVertexArray(0)
	gl.Enable(gl.PROGRAM_POINT_SIZE)

	return r, nil
}

func (r *Renderer) Draw(s *GameSession) {
	gl.ClearColor(0.16, 0.16, 0.18, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	r.verts = r.verts[:0]
	r.markers = r.markers[:0]

	r.buildWorld(s)
	r.buildVehicles(s)
	r.buildObstacles(s)

	camX, camZ := s.Camera.EffectivePos()
	r.flush(camX, camZ)
}

func (r *Renderer) buildWorld(s *GameSession) {
	for ti := range s.World.Tiles {
		t := &s.World.Tiles[ti]
		ts := s.World.cfg.TileSize
		// tile ground
		r.rect(t.OriginX, t.OriginZ, t.OriginX+ts, t.OriginZ+ts, 0.28, 0.28, 0.3)
		for bi := range t.Buildings {
			b := &t.Buildings[bi]
			shade := float32(0.35 + math.Min(b.Height, 40)/40*0.3)
			r.rect(b.Box.X0, b.Box.Z0, b.Box.X1, b.Box.Z1, shade, shade, shade)
		}
		for hi := range t.Hazards {
			h := t.Hazards[hi].Box
			r.rect(h.X0, h.Z0, h.X1, h.Z1, 0.1, 0.3, 0.55)
		}
	}
}

func (r *Renderer) buildVehicles(s *GameSession) {
	cfg := s.cfg
	for i := range s.Traffic.Cars {
		c := &s.Traffic.Cars[i]
		r.quadRot(c.X, c.Z, cfg.ChaserWidth/2, cfg.ChaserLength/2, c.Rotation, 0.8, 0.7, 0.2)
	}
	for i := range s.Police.Chasers {
		c := &s.Police.Chasers[i]
		r.quadRot(c.X, c.Z, cfg.ChaserWidth/2, cfg.ChaserLength/2, c.Rotation, 0.2, 0.35, 0.95)
	}
	p := s.Player
	r.quadRot(p.X, p.Z, cfg.PlayerWidth/2, cfg.PlayerLength/2, p.Rotation, 0.9, 0.15, 0.15)
}

func (r *Renderer) buildObstacles(s *GameSession) {
	for _, o := range s.Obstacles.Active {
		hw, _ := obstacleHalfSize(o.Kind)
		var cr, cg, cb float32
		switch o.Kind {
		case KindBarrier:
			cr, cg, cb = 0.9, 0.5, 0.1
		case KindBarrel:
			cr, cg, cb = 0.7, 0.2, 0.1
		case KindMoving:
			cr, cg, cb = 0.2, 0.6, 0.9
		default:
			cr, cg, cb = 0.95, 0.6, 0.2
		}
		r.markers = append(r.markers,
			float32(o.X), float32(o.Z), float32(hw*2), cr, cg, cb)
	}
}

func (r *Renderer) rect(x0, z0, x1, z1 float64, cr, cg, cb float32) {
	ax, az := float32(x0), float32(z0)
	bx, bz := float32(x1), float32(z1)
	r.verts = append(r.verts,
		ax, az, cr, cg, cb,
		bx, az, cr, cg, cb,
		bx, bz, cr, cg, cb,
		ax, az, cr, cg, cb,
		bx, bz, cr, cg, cb,
		ax, bz, cr, cg, cb,
	)
}

func (r *Renderer) quadRot(x, z, halfW, halfL, rot float64, cr, cg, cb float32) {
	c := math.Cos(rot)
	s := math.Sin(rot)
	px := func(lx, lz float64) (float32, float32) {
		return float32(x + c*lx + s*lz), float32(z - s*lx + c*lz)
	}
	x0, z0 := px(-halfW, -halfL)
	x1, z1 := px(halfW, -halfL)
	x2, z2 := px(halfW, halfL)
	x3, z3 := px(-halfW, halfL)
	r.verts = append(r.verts,
		x0, z0, cr, cg, cb,
		x1, z1, cr, cg, cb,
		x2, z2, cr, cg, cb,
		x0, z0, cr, cg, cb,
		x2, z2, cr, cg, cb,
		x3, z3, cr, cg, cb,
	)
}

func (r *Renderer) flush(camX, camZ float64) {
	res := [2]float32{float32(WindowWidth), float32(WindowHeight)}

	if len(r.verts) > 0 {
		gl.UseProgram(r.flatProg)
		gl.Uniform2f(gl.GetUniformLocation(r.flatProg, gl.Str("uCamera\x00")), float32(camX), float32(camZ))
		gl.Uniform1f(gl.GetUniformLocation(r.flatProg, gl.Str("uZoom\x00")), float32(r.zoom))
		gl.Uniform2f(gl.GetUniformLocation(r.flatProg, gl.Str("uResolution\x00")), res[0], res[1])
		gl.BindVertexArray(r.flatVAO)
		gl.BindBuffer(gl.ARRAY_BUFFER, r.flatVBO)
		gl.BufferData(gl.ARRAY_BUFFER, len(r.verts)*4, gl.Ptr(r.verts), gl.STREAM_DRAW)
		gl.DrawArrays(gl.TRIANGLES, 0, int32(len(r.verts)/5))
	}

	if len(r.markers) > 0 {
		gl.UseProgram(r.markerProg)
		gl.Uniform2f(gl.GetUniformLocation(r.markerProg, gl.Str("uCamera\x00")), float32(camX), float32(camZ))
		gl.Uniform1f(gl.GetUniformLocation(r.markerProg, gl.Str("uZoom\x00")), float32(r.zoom))
		gl.Uniform2f(gl.GetUniformLocation(r.markerProg, gl.Str("uResolution\x00")), res[0], res[1])
		gl.BindVertexArray(r.markerVAO)
		gl.BindBuffer(gl.ARRAY_BUFFER, r.markerVBO)
		gl.BufferData(gl.ARRAY_BUFFER, len(r.markers)*4, gl.Ptr(r.markers), gl.STREAM_DRAW)
		gl.DrawArrays(gl.POINTS, 0, int32(len(r.markers)/6))
	}

	gl.BindVertexArray(0)
}

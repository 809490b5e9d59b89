package model

// Fit scales the model uniformly so its largest local extent equals
// targetSize and moves it so the scaled bounds center lands on its current
// position origin. A degenerate box counts as size 1.
func Fit(m *Model, targetSize float32) {
	box := m.LocalBounds()

	maxDim := box.Size().MaxComponent()
	if maxDim <= 0 {
		maxDim = 1
	}

	scale := targetSize / maxDim
	m.Scale = scale

	center := box.Center().Scale(scale)
	m.Position = m.Position.Sub(center)
}

// Layout fits every model and spreads them along X, centered on the origin.
func Layout(models []*Model, targetSize, gap float32) {
	n := float32(len(models))
	for i, m := range models {
		Fit(m, targetSize)
		m.Position.X += (float32(i) - (n-1)/2) * (targetSize + gap)
	}
}

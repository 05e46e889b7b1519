package world

// SetSkyLight sets the light reaching the top of the chunk, clamped to 0..15.
func (c *Chunk) SetSkyLight(level int) {
	c.mu.Lock()
	c.skyLight = clampLight(level)
	c.mu.Unlock()
}

func (c *Chunk) SkyLight() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.skyLight
}

// LightLevel approximates sky light at coord: opaque blocks above cast full
// shadow, every other non-air block above dims the light by one.
func (c *Chunk) LightLevel(coord BlockCoord) int {
	sky := c.SkyLight()
	localX, localY, localZ, ok := c.GlobalToLocal(coord)
	if !ok {
		return sky
	}
	column, ok := c.loadColumn(localX, localY)
	if !ok {
		return sky
	}
	level := sky
	for z := localZ + 1; z < len(column); z++ {
		block := column[z]
		if blockIsAir(block) {
			continue
		}
		if block.Opaque() {
			return 0
		}
		level--
	}
	return clampLight(level)
}

func clampLight(level int) int {
	if level < 0 {
		return 0
	}
	if level > MaxLightLevel {
		return MaxLightLevel
	}
	return level
}

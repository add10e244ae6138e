package mesh

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/ignition/common"
)

// MaterialInfo is the subset of a Wavefront MTL file the viewer consumes:
// the diffuse color and the diffuse texture map path, both as written in the
// file (texture paths are not resolved against any directory here).
type MaterialInfo struct {
	TexturePath string
	Diffuse     [3]float32
	HasDiffuse  bool
}

// ParseOBJ reads a Wavefront OBJ stream into mesh data. Supported statements
// are v, vn, vt, f and mtllib; everything else is skipped. Face vertices may
// use any of the v, v/vt, v//vn and v/vt/vn index forms (1-based, negative
// indices count from the end). Faces with more than three vertices are fan
// triangulated. Identical face-vertex triplets are deduplicated.
//
// Parameters:
//   - r: the OBJ stream
//
// Returns:
//   - *Data: the parsed mesh
//   - []string: mtllib file names referenced by the stream, in order
//   - error: error when a vertex statement is malformed
func ParseOBJ(r io.Reader) (*Data, []string, error) {
	var (
		tempPositions []common.Vec3
		tempNormals   []common.Vec3
		tempTexcoords []float32
		mtlLibs       []string
	)

	d := &Data{}
	vertexMap := make(map[string]uint32)
	lineNo := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			p, err := parseVec3(fields[1:])
			if err != nil {
				return nil, nil, fmt.Errorf("obj line %d: vertex: %w", lineNo, err)
			}
			tempPositions = append(tempPositions, p)

		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, nil, fmt.Errorf("obj line %d: normal: %w", lineNo, err)
			}
			tempNormals = append(tempNormals, n)

		case "vt":
			if len(fields) < 3 {
				return nil, nil, fmt.Errorf("obj line %d: texcoord needs 2 components", lineNo)
			}
			u, err1 := parseFloat(fields[1])
			v, err2 := parseFloat(fields[2])
			if err1 != nil || err2 != nil {
				return nil, nil, fmt.Errorf("obj line %d: texcoord: invalid number", lineNo)
			}
			tempTexcoords = append(tempTexcoords, u, v)

		case "mtllib":
			if len(fields) > 1 {
				mtlLibs = append(mtlLibs, fields[1])
			}

		case "f":
			var face []uint32
			for _, token := range fields[1:] {
				if idx, ok := vertexMap[token]; ok {
					face = append(face, idx)
					continue
				}

				posIdx, texIdx, normIdx := parseFaceVertex(token)
				pos, ok := resolveIndex(posIdx, len(tempPositions))
				if !ok {
					continue
				}

				newIndex := uint32(len(d.Positions))
				d.Positions = append(d.Positions, tempPositions[pos])

				if norm, ok := resolveIndex(normIdx, len(tempNormals)); ok {
					d.Normals = append(d.Normals, tempNormals[norm])
				} else {
					d.Normals = append(d.Normals, common.Vec3{Y: 1})
				}

				if tex, ok := resolveIndex(texIdx, len(tempTexcoords)/2); ok {
					d.Texcoords = append(d.Texcoords, tempTexcoords[tex*2], tempTexcoords[tex*2+1])
				} else {
					d.Texcoords = append(d.Texcoords, 0, 0)
				}

				vertexMap[token] = newIndex
				face = append(face, newIndex)
			}

			for i := 1; i+1 < len(face); i++ {
				d.Indices = append(d.Indices, face[0], face[i], face[i+1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("obj read: %w", err)
	}

	return d, mtlLibs, nil
}

// ParseMTL reads a Wavefront MTL stream and extracts the diffuse color (Kd)
// and diffuse texture map (map_Kd). When the file defines several materials
// the last Kd and map_Kd win, which matches single-material prop meshes.
//
// Parameters:
//   - r: the MTL stream
//
// Returns:
//   - MaterialInfo: the extracted material values
//   - error: error when the stream cannot be read
func ParseMTL(r io.Reader) (MaterialInfo, error) {
	var info MaterialInfo

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "map_Kd":
			if len(fields) > 1 {
				info.TexturePath = fields[len(fields)-1]
			}
		case "Kd":
			if len(fields) >= 4 {
				r, err1 := parseFloat(fields[1])
				g, err2 := parseFloat(fields[2])
				b, err3 := parseFloat(fields[3])
				if err1 == nil && err2 == nil && err3 == nil {
					info.Diffuse = [3]float32{r, g, b}
					info.HasDiffuse = true
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return MaterialInfo{}, fmt.Errorf("mtl read: %w", err)
	}
	return info, nil
}

// parseFaceVertex splits one face-vertex token into its position, texcoord
// and normal indices as written (1-based, 0 when absent).
func parseFaceVertex(token string) (pos, tex, norm int) {
	parts := strings.Split(token, "/")
	pos = parseIndex(parts[0])
	if len(parts) > 1 {
		tex = parseIndex(parts[1])
	}
	if len(parts) > 2 {
		norm = parseIndex(parts[2])
	}
	return pos, tex, norm
}

// resolveIndex converts a 1-based OBJ index (negative counts from the end)
// into a 0-based slice index, reporting whether it is in range.
func resolveIndex(idx, count int) (int, bool) {
	switch {
	case idx > 0 && idx <= count:
		return idx - 1, true
	case idx < 0 && -idx <= count:
		return count + idx, true
	default:
		return 0, false
	}
}

func parseIndex(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func parseFloat(s string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	return float32(f), err
}

func parseVec3(fields []string) (common.Vec3, error) {
	if len(fields) < 3 {
		return common.Vec3{}, fmt.Errorf("needs 3 components, got %d", len(fields))
	}
	x, err1 := parseFloat(fields[0])
	y, err2 := parseFloat(fields[1])
	z, err3 := parseFloat(fields[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return common.Vec3{}, fmt.Errorf("invalid number in %q", strings.Join(fields[:3], " "))
	}
	return common.Vec3{X: x, Y: y, Z: z}, nil
}

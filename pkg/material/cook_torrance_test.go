package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/doubleailes/crust-render/pkg/core"
)

func TestCookTorrance_ScatterMatchesPDF(t *testing.T) {
	ct := NewCookTorrance(core.NewVec3(0.8, 0.6, 0.4), 0.4, 0.0)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	normal := core.NewVec3(0, 0, 1)
	hit := testHit(normal)
	ray := core.NewRay(core.NewVec3(-1, 0, 1), core.NewVec3(1, 0, -1).Normalize())
	incoming := ray.Direction.Normalize()

	for i := 0; i < 500; i++ {
		scatter, didScatter := ct.Scatter(ray, hit, sampler)
		if !didScatter {
			continue
		}
		outgoing := scatter.Scattered.Direction.Normalize()
		pdf, isDelta := ct.PDF(incoming, outgoing, normal)
		if isDelta {
			t.Fatal("Cook-Torrance is a continuous lobe")
		}
		if math.Abs(pdf-scatter.PDF) > 1e-9 {
			t.Fatalf("scatter PDF %f disagrees with PDF() %f", scatter.PDF, pdf)
		}
		if scatter.Attenuation.X < 0 || scatter.Attenuation.Y < 0 || scatter.Attenuation.Z < 0 {
			t.Fatalf("negative BRDF value %v", scatter.Attenuation)
		}
	}
}

func TestCookTorrance_RoughnessClamped(t *testing.T) {
	ct := NewCookTorrance(core.NewVec3(1, 1, 1), 0.0, 0.0)
	if ct.Roughness < 0.05 {
		t.Errorf("roughness should be clamped away from zero, got %f", ct.Roughness)
	}
	ct = NewCookTorrance(core.NewVec3(1, 1, 1), 3.0, -1.0)
	if ct.Roughness != 1.0 {
		t.Errorf("roughness should clamp to 1, got %f", ct.Roughness)
	}
	if ct.Metallic != 0.0 {
		t.Errorf("metallic should clamp to 0, got %f", ct.Metallic)
	}
}

func TestCookTorrance_MetalHasNoDiffuse(t *testing.T) {
	// A pure metal reflects through the specular lobe only. Away from the
	// mirror direction the rough specular term is small, so a fully metallic
	// surface should have a far dimmer off-peak response than a dielectric
	// with the same albedo.
	albedo := core.NewVec3(0.9, 0.7, 0.3)
	metal := NewCookTorrance(albedo, 0.2, 1.0)
	plastic := NewCookTorrance(albedo, 0.2, 0.0)

	normal := core.NewVec3(0, 0, 1)
	incoming := core.NewVec3(1, 0, -1).Normalize()
	offPeak := core.NewVec3(-0.5, 0.5, 1).Normalize()

	m := metal.EvaluateBRDF(incoming, offPeak, normal)
	p := plastic.EvaluateBRDF(incoming, offPeak, normal)
	if m.Y >= p.Y {
		t.Errorf("metal off-peak %v should be dimmer than dielectric %v", m, p)
	}
}

func TestCookTorrance_SmoothSurfacePeaksAtMirror(t *testing.T) {
	ct := NewCookTorrance(core.NewVec3(0.8, 0.8, 0.8), 0.1, 1.0)

	normal := core.NewVec3(0, 0, 1)
	incoming := core.NewVec3(1, 0, -1).Normalize()
	mirror := incoming.Reflect(normal)
	offPeak := core.NewVec3(0, 0.7, 1).Normalize()

	atMirror := ct.EvaluateBRDF(incoming, mirror, normal)
	atOffPeak := ct.EvaluateBRDF(incoming, offPeak, normal)
	if atMirror.X <= atOffPeak.X {
		t.Errorf("GGX lobe should peak at the mirror direction: %v vs %v", atMirror, atOffPeak)
	}
}

func TestCookTorrance_EnergyBounded(t *testing.T) {
	// White furnace style check: total reflectance estimated with the
	// material's own sampling must not exceed 1.
	ct := NewCookTorrance(core.NewVec3(1, 1, 1), 0.5, 0.0)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(7)))

	normal := core.NewVec3(0, 0, 1)
	hit := testHit(normal)
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0.3, 0, -1).Normalize())

	sum := 0.0
	count := 50000
	for i := 0; i < count; i++ {
		scatter, ok := ct.Scatter(ray, hit, sampler)
		if !ok || scatter.PDF <= 0 {
			continue
		}
		cosTheta := scatter.Scattered.Direction.Normalize().Dot(normal)
		sum += scatter.Attenuation.MaxComponent() * cosTheta / scatter.PDF
	}

	reflectance := sum / float64(count)
	if reflectance > 1.05 {
		t.Errorf("reflectance %f exceeds 1", reflectance)
	}
	if reflectance < 0.3 {
		t.Errorf("reflectance %f implausibly low for a white surface", reflectance)
	}
}

package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/doubleailes/crust-render/pkg/core"
)

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	// Exiting the glass at a grazing angle well past the critical angle
	// (~41.8 degrees for n=1.5): refraction is impossible.
	normal := core.NewVec3(0, 0, 1)
	hit := core.HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    normal,
		FrontFace: false,
	}
	incident := core.NewVec3(1, 0, -0.2).Normalize()
	ray := core.NewRay(core.NewVec3(-1, 0, 0.2), incident)

	for i := 0; i < 100; i++ {
		scatter, didScatter := glass.Scatter(ray, hit, sampler)
		if !didScatter {
			t.Fatal("dielectric should always scatter")
		}
		expected := incident.Reflect(normal)
		if scatter.Scattered.Direction.Subtract(expected).Length() > 1e-10 {
			t.Fatalf("expected total internal reflection %v, got %v", expected, scatter.Scattered.Direction)
		}
	}
}

func TestDielectric_NormalIncidencePassesThrough(t *testing.T) {
	glass := NewDielectric(1.5)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	normal := core.NewVec3(0, 0, 1)
	hit := testHit(normal)
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))

	refracted, reflected := 0, 0
	for i := 0; i < 1000; i++ {
		scatter, _ := glass.Scatter(ray, hit, sampler)
		if scatter.Scattered.Direction.Dot(normal) < 0 {
			refracted++
		} else {
			reflected++
		}
	}

	// Schlick at normal incidence for n=1.5 gives r0=0.04
	reflectRate := float64(reflected) / 1000.0
	if math.Abs(reflectRate-0.04) > 0.03 {
		t.Errorf("reflection rate %f, expected near 0.04", reflectRate)
	}
	if refracted == 0 {
		t.Error("expected most rays to refract at normal incidence")
	}
}

func TestDielectric_AttenuationIsWhite(t *testing.T) {
	glass := NewDielectric(1.5)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	hit := testHit(core.NewVec3(0, 0, 1))
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))

	scatter, _ := glass.Scatter(ray, hit, sampler)
	if scatter.Attenuation != core.NewVec3(1, 1, 1) {
		t.Errorf("clear glass should not absorb, got %v", scatter.Attenuation)
	}
	if !scatter.IsSpecular() {
		t.Error("dielectric scatter should be specular")
	}
}

func TestReflectance(t *testing.T) {
	// Normal incidence: r0 = ((1-1.5)/(1+1.5))^2 = 0.04
	if r := Reflectance(1.0, 1.0/1.5); math.Abs(r-0.04) > 1e-10 {
		t.Errorf("normal incidence reflectance %f, expected 0.04", r)
	}
	// Grazing incidence approaches full reflection
	if r := Reflectance(0.0, 1.0/1.5); math.Abs(r-1.0) > 1e-10 {
		t.Errorf("grazing reflectance %f, expected 1.0", r)
	}
	// Monotonic between the two
	if Reflectance(0.5, 1.0/1.5) >= Reflectance(0.1, 1.0/1.5) {
		t.Error("reflectance should decrease with cosine")
	}
}

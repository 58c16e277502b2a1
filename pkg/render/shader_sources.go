package render

// GLSL sources for the built-in programs. Every object shares one vertex
// stage; shape detail lives in the fragment shaders, which evaluate a
// signed-distance function from the geometry-space coordinate instead of
// tessellating curves.

// Universal vertex shader: projection and model transform plus the two UV
// channels every fragment stage consumes.
const universalVertexSrc = `
#version 140
in vec2 aPos;
in vec2 aTexUv;
in vec2 aGeomUv;

uniform mat4 projection;
uniform mat4 model;

out vec2 v_tex_uv;
out vec2 v_geom_uv;

void main() {
    gl_Position = projection * model * vec4(aPos, 0.0, 1.0);
    v_tex_uv = aTexUv;
    v_geom_uv = aGeomUv;
}
`

// Vertex shader for the full-surface quad used by blur and composite
// passes; positions are already in clip space.
const quadVertexSrc = `
#version 140
in vec2 aPos;
in vec2 aTexUv;

out vec2 v_tex_uv;

void main() {
    gl_Position = vec4(aPos, 0.0, 1.0);
    v_tex_uv = aTexUv;
}
`

// Plain rectangle: solid color or texture modulate.
const rectFragmentSrc = `
#version 140
out vec4 outColor;
in vec2 v_tex_uv;

uniform vec4 objectColor;
uniform sampler2D objectTexture;
uniform bool useTexture;

void main() {
    if (useTexture) {
        outColor = texture(objectTexture, v_tex_uv) * objectColor;
    } else {
        outColor = objectColor;
    }
}
`

// Rounded rectangle via SDF: antialiased corners, optional border ring,
// blur falloff and inset mode, all from the same two triangles.
const roundedRectFragmentSrc = `
#version 140
out vec4 outColor;
in vec2 v_geom_uv;
in vec2 v_tex_uv;

uniform vec4 objectColor;
uniform sampler2D objectTexture;
uniform bool useTexture;
uniform vec2 quadSize;
uniform vec2 shapeSize;
uniform float cornerRadius;
uniform float blur;
uniform bool inset;
uniform float borderWidth;
uniform vec4 borderColor;
uniform float spread;

float sdfRoundedBox(vec2 p, vec2 b, float r) {
    vec2 q = abs(p) - b + vec2(r);
    return length(max(q, 0.0)) + min(max(q.x, q.y), 0.0) - r;
}

void main() {
    vec4 baseColor = useTexture ? texture(objectTexture, v_tex_uv) : objectColor;
    vec2 p = (v_geom_uv - 0.5) * quadSize;
    float dist = sdfRoundedBox(p, shapeSize * 0.5, cornerRadius);

    float alpha;
    vec4 finalColor = baseColor;

    if (borderWidth > 0.0) {
        float innerDist = sdfRoundedBox(p, shapeSize * 0.5 - borderWidth, max(0.0, cornerRadius - borderWidth));

        float edgeSoftness = max(0.5, fwidth(dist));
        float innerEdgeSoftness = max(0.5, fwidth(innerDist));

        float outerAlpha = smoothstep(-edgeSoftness, edgeSoftness, -dist);
        float innerAlpha = smoothstep(-innerEdgeSoftness, innerEdgeSoftness, -innerDist);
        alpha = outerAlpha - innerAlpha;
        finalColor = borderColor;

        if (blur > 0.0) {
            if (inset) {
                alpha = smoothstep(blur, 0.0, alpha);
            } else {
                alpha = 1.0 - smoothstep(0.0, blur, 1.0 - alpha);
            }
        }
    } else {
        if (blur > 0.0) {
            float effectiveDist = dist - spread;

            if (inset) {
                alpha = smoothstep(blur, 0.0, -effectiveDist);
            } else {
                alpha = exp(-pow(max(0.0, effectiveDist), 2.0) * 6.0 / blur);
            }
        } else {
            float edgeSoftness = max(0.5, fwidth(dist));
            alpha = smoothstep(-edgeSoftness, edgeSoftness, -dist);
        }
    }

    outColor = vec4(finalColor.rgb, finalColor.a * alpha);
    if (outColor.a < 0.005) {
        discard;
    }
}
`

// Circle via SDF, with the same border/blur/inset options.
const circleFragmentSrc = `
#version 140
out vec4 outColor;
in vec2 v_geom_uv;
in vec2 v_tex_uv;

uniform vec4 objectColor;
uniform sampler2D objectTexture;
uniform bool useTexture;
uniform vec2 quadSize;
uniform float shapeRadius;
uniform float blur;
uniform bool inset;
uniform float borderWidth;
uniform vec4 borderColor;

void main() {
    vec4 baseColor = useTexture ? texture(objectTexture, v_tex_uv) : objectColor;
    vec2 p = (v_geom_uv - 0.5) * quadSize;
    float dist = length(p) - shapeRadius;
    float alphaMul;

    if (borderWidth > 0.0) {
        float innerDist = dist + borderWidth;
        float edgeSoftness = fwidth(dist);
        float innerEdgeSoftness = fwidth(innerDist);
        float outerAlpha = smoothstep(edgeSoftness, -edgeSoftness, dist);
        float innerAlpha = smoothstep(innerEdgeSoftness, -innerEdgeSoftness, innerDist);
        alphaMul = outerAlpha - innerAlpha;
        outColor = borderColor;
        if (innerDist < 0.0) {
            outColor = baseColor;
            alphaMul = smoothstep(edgeSoftness, -edgeSoftness, dist);
        }
    } else {
        if (blur > 0.0) {
            float normalizedDist = clamp((inset ? -dist : dist) / blur, 0.0, 1.0);
            alphaMul = 1.0 - pow(normalizedDist, 0.75);
        } else {
            float edgeSoftness = fwidth(dist);
            alphaMul = smoothstep(edgeSoftness, -edgeSoftness, dist);
        }
        outColor = baseColor;
    }

    outColor.a *= alphaMul;
    if (outColor.a < 0.01) {
        discard;
    }
}
`

// Glyph: the atlas stores coverage in the red channel.
const glyphFragmentSrc = `
#version 140
out vec4 outColor;
in vec2 v_tex_uv;

uniform sampler2D objectTexture;
uniform vec4 objectColor;

void main() {
    float alpha = texture(objectTexture, v_tex_uv).r;
    outColor = vec4(objectColor.rgb, objectColor.a * alpha);
}
`

// Line: geometry-space Y spans the stroke cross-section, which gives a
// one-pixel antialiased edge at any width.
const lineFragmentSrc = `
#version 140
out vec4 outColor;
in vec2 v_geom_uv;
in vec2 v_tex_uv;

uniform vec4 objectColor;
uniform sampler2D objectTexture;
uniform bool useTexture;
uniform float lineWidth;

void main() {
    vec4 baseColor = useTexture ? texture(objectTexture, v_tex_uv) : objectColor;
    float dist = abs(v_geom_uv.y);
    float alpha = smoothstep(lineWidth / 2.0, lineWidth / 2.0 - 1.0, dist);
    outColor = vec4(baseColor.rgb, baseColor.a * alpha);
    if (alpha < 0.01) discard;
}
`

// Horizontal pass of the separable Gaussian: center tap once, symmetric
// offsets weighted from the kernel table.
const horizontalBlurFragmentSrc = `
#version 140
out vec4 outColor;
in vec2 v_tex_uv;

uniform sampler2D tex;
uniform float weights[16];
uniform int halfKernel;
uniform float pixelSize;

void main() {
    vec4 color = texture(tex, v_tex_uv) * weights[0];
    for (int i = 1; i <= halfKernel; i++) {
        color += texture(tex, v_tex_uv + vec2(float(i) * pixelSize, 0.0)) * weights[i];
        color += texture(tex, v_tex_uv - vec2(float(i) * pixelSize, 0.0)) * weights[i];
    }
    outColor = color;
}
`

// Vertical pass, identical convolution along Y.
const verticalBlurFragmentSrc = `
#version 140
out vec4 outColor;
in vec2 v_tex_uv;

uniform sampler2D tex;
uniform float weights[16];
uniform int halfKernel;
uniform float pixelSize;

void main() {
    vec4 color = texture(tex, v_tex_uv) * weights[0];
    for (int i = 1; i <= halfKernel; i++) {
        color += texture(tex, v_tex_uv + vec2(0.0, float(i) * pixelSize)) * weights[i];
        color += texture(tex, v_tex_uv - vec2(0.0, float(i) * pixelSize)) * weights[i];
    }
    outColor = color;
}
`

// Straight copy used when a shadow bucket has no blur to apply.
const compositeFragmentSrc = `
#version 140
out vec4 outColor;
in vec2 v_tex_uv;

uniform sampler2D tex;

void main() {
    outColor = texture(tex, v_tex_uv);
}
`

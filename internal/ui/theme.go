package ui

const themeInitScript = `(function(){
  var root=document.documentElement;
  var media=window.matchMedia('(prefers-color-scheme: dark)');
  function normalize(mode){
    return mode==='light'||mode==='dark'||mode==='auto'?mode:'auto';
  }
  function apply(mode){
    var selected=normalize(mode);
    var resolved=selected==='auto'?(media.matches?'dark':'light'):selected;
    root.setAttribute('data-color-mode',selected);
    root.setAttribute('data-light-theme',resolved);
    root.setAttribute('data-dark-theme','dark');
  }
  var stored='auto';
  try {
    stored=normalize(localStorage.getItem('fi-dashboard-theme')||'auto');
  } catch (_) {}
  apply(stored);
  window.__fiThemeApply=apply;
})();`

const themeToggleScript = `(function(){
  var root=document.documentElement;
  var media=window.matchMedia('(prefers-color-scheme: dark)');
  var apply=window.__fiThemeApply;
  var toggle=document.getElementById('theme-toggle');
  if(!apply||!toggle){ return; }

  function resolvedMode(){
    var selected=root.getAttribute('data-color-mode')||'auto';
    return selected==='auto'?(media.matches?'dark':'light'):selected;
  }

  toggle.addEventListener('click', function(){
    var next=resolvedMode()==='dark'?'light':'dark';
    apply(next);
    try { localStorage.setItem('fi-dashboard-theme', next); } catch (_) {}
  });
})();`
